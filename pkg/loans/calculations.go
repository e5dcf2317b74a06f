// Package loans provides loan and mortgage payment calculations.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/datetime"
	"github.com/iwvelando/omnicalc/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrInvalidPrincipal is returned when the amount financed is not positive.
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	// ErrInvalidTerm is returned when the loan term is not positive.
	ErrInvalidTerm = errors.New("term must be greater than zero")
	// ErrInvalidRate is returned for negative interest rates.
	ErrInvalidRate = errors.New("interest rate cannot be negative")
	// ErrDownPaymentExceedsPrice is returned when the down payment covers the whole price.
	ErrDownPaymentExceedsPrice = errors.New("down payment must be less than the price")
)

// LoanRequest describes a fixed-rate, fully amortizing loan.
type LoanRequest struct {
	Principal    float64 `json:"principal" validate:"gt=0"`
	DownPayment  float64 `json:"downPayment" validate:"gte=0"`
	InterestRate float64 `json:"interestRate" validate:"gte=0,lte=100"`
	TermYears    int     `json:"termYears" validate:"gt=0,lte=100"`
}

// Summary holds the headline figures for a loan.
type Summary struct {
	AmountFinanced float64 `json:"amountFinanced"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TermMonths     int     `json:"termMonths"`
}

// Payment holds the values for a given month of the schedule.
type Payment struct {
	Month              int     `json:"month"`
	Date               string  `json:"date,omitempty"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	ExtraPrincipal     float64 `json:"extraPrincipal,omitempty"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, downPayment, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return (principal - downPayment) / float64(termMonths)
	}

	periodicInterestRate := mathutil.PercentToRate(annualInterestRate)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return (principal - downPayment) * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.PercentToRate(annualInterestRate)
}

// Validate checks the request and returns the first problem found.
func (r LoanRequest) Validate() error {
	switch {
	case r.InterestRate < 0:
		return fmt.Errorf("%w: %.2f", ErrInvalidRate, r.InterestRate)
	case r.DownPayment < 0:
		return fmt.Errorf("%w: down payment %.2f", ErrInvalidPrincipal, r.DownPayment)
	case r.TermYears <= 0:
		return fmt.Errorf("%w: %d years", ErrInvalidTerm, r.TermYears)
	case r.Principal-r.DownPayment <= 0:
		return fmt.Errorf("%w: %.2f financed", ErrInvalidPrincipal, r.Principal-r.DownPayment)
	}
	return nil
}

// TermMonths returns the number of monthly payments.
func (r LoanRequest) TermMonths() int {
	return r.TermYears * constants.MonthsPerYear
}

// Summarize computes the monthly payment and lifetime totals of a loan.
func Summarize(req LoanRequest) (Summary, error) {
	if err := req.Validate(); err != nil {
		return Summary{}, err
	}

	months := req.TermMonths()
	monthly := CalculateMonthlyPayment(req.Principal, req.DownPayment, req.InterestRate, months)
	financed := req.Principal - req.DownPayment
	total := monthly * float64(months)

	return Summary{
		AmountFinanced: mathutil.Round(financed),
		MonthlyPayment: mathutil.Round(monthly),
		TotalPayment:   mathutil.Round(total),
		TotalInterest:  mathutil.Round(total - financed),
		TermMonths:     months,
	}, nil
}

// Mortgage summarizes a home loan where the amount financed is the price less
// the down payment.
func Mortgage(homePrice, downPayment, annualInterestRate float64, termYears int) (Summary, error) {
	if homePrice <= 0 {
		return Summary{}, fmt.Errorf("%w: home price %.2f", ErrInvalidPrincipal, homePrice)
	}
	if downPayment < 0 || downPayment >= homePrice {
		return Summary{}, fmt.Errorf("%w: %.2f of %.2f", ErrDownPaymentExceedsPrice, downPayment, homePrice)
	}
	return Summarize(LoanRequest{
		Principal:    homePrice,
		DownPayment:  downPayment,
		InterestRate: annualInterestRate,
		TermYears:    termYears,
	})
}

// Event represents an extra principal payment. A zero Frequency means a
// single payment in StartMonth; otherwise the payment repeats every
// Frequency months until EndMonth (or the end of the loan when EndMonth is 0).
type Event struct {
	Name       string  `json:"name,omitempty"`
	Amount     float64 `json:"amount" validate:"gt=0"`
	StartMonth int     `json:"startMonth" validate:"gte=1"`
	EndMonth   int     `json:"endMonth,omitempty" validate:"gte=0"`
	Frequency  int     `json:"frequency,omitempty" validate:"gte=0"`
}

// activeIn reports whether the event pays in the given 1-based month.
func (e Event) activeIn(month int) bool {
	if month < e.StartMonth {
		return false
	}
	if e.Frequency == 0 {
		return month == e.StartMonth
	}
	if e.EndMonth > 0 && month > e.EndMonth {
		return false
	}
	return (month-e.StartMonth)%e.Frequency == 0
}

// ScheduleRequest is a loan plus optional extra principal payments. When
// StartDate is set each row is labelled with its payment date.
type ScheduleRequest struct {
	LoanRequest
	StartDate     string  `json:"startDate,omitempty"`
	ExtraPayments []Event `json:"extraPayments,omitempty" validate:"dive"`
}

// Schedule is a month by month amortization table with its totals.
type Schedule struct {
	MonthlyPayment float64   `json:"monthlyPayment"`
	Payments       []Payment `json:"payments"`
	TotalPayment   float64   `json:"totalPayment"`
	TotalInterest  float64   `json:"totalInterest"`
	PayoffMonths   int       `json:"payoffMonths"`
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule for a loan. The
// schedule stops early once extra payments retire the balance.
func (g *AmortizationScheduleGenerator) GenerateSchedule(req ScheduleRequest) (Schedule, error) {
	if err := req.Validate(); err != nil {
		return Schedule{}, err
	}

	var start string
	if req.StartDate != "" {
		t, err := datetime.ParseDate(req.StartDate)
		if err != nil {
			return Schedule{}, err
		}
		start = t.Format(datetime.DateLayout)
	}

	months := req.TermMonths()
	monthlyPayment := CalculateMonthlyPayment(req.Principal, req.DownPayment, req.InterestRate, months)
	balance := req.Principal - req.DownPayment

	schedule := Schedule{
		MonthlyPayment: mathutil.Round(monthlyPayment),
		Payments:       make([]Payment, 0, months),
	}

	for month := 1; month <= months && balance > 0; month++ {
		interest := CalculateInterestPayment(balance, req.InterestRate)
		principal := math.Min(monthlyPayment-interest, balance)

		extra := g.CalculateExtraPrincipalWithOverpaymentPrevention(req.ExtraPayments, month, balance-principal)

		remaining := balance - principal - extra
		if month == months || mathutil.Round(remaining) == 0 {
			// We will get machine error otherwise so just fold the residue in.
			principal += remaining
			remaining = 0
		}

		payment := Payment{
			Month:              month,
			Payment:            mathutil.Round(principal + interest + extra),
			Principal:          mathutil.Round(principal),
			Interest:           mathutil.Round(interest),
			ExtraPrincipal:     mathutil.Round(extra),
			RemainingPrincipal: mathutil.Round(remaining),
		}
		if start != "" {
			payment.Date = datetime.MustParseTime(datetime.DateLayout, start).AddDate(0, month-1, 0).Format(datetime.DateLayout)
		}
		schedule.Payments = append(schedule.Payments, payment)

		schedule.TotalPayment += principal + interest + extra
		schedule.TotalInterest += interest
		balance = remaining
	}

	schedule.PayoffMonths = len(schedule.Payments)
	schedule.TotalPayment = mathutil.Round(schedule.TotalPayment)
	schedule.TotalInterest = mathutil.Round(schedule.TotalInterest)

	if schedule.PayoffMonths < months {
		g.logger.Debug(fmt.Sprintf("loan paid off after %d of %d months", schedule.PayoffMonths, months),
			zap.String("op", "loans.GenerateSchedule"),
		)
	}

	return schedule, nil
}

// CalculateExtraPrincipal calculates the total extra principal payment for a given month
func CalculateExtraPrincipal(extraPrincipalPayments []Event, month int) float64 {
	amount := 0.00

	for _, event := range extraPrincipalPayments {
		if event.activeIn(month) {
			amount += event.Amount
		}
	}

	return amount
}

// CalculateExtraPrincipalWithOverpaymentPrevention calculates extra principal capped to the balance left after the regular payment.
func (g *AmortizationScheduleGenerator) CalculateExtraPrincipalWithOverpaymentPrevention(events []Event, month int, currentBalance float64) float64 {
	totalExtra := CalculateExtraPrincipal(events, month)
	if totalExtra == 0 {
		return 0
	}

	// Prevent overpayment by capping extra payment to current balance
	if totalExtra > currentBalance {
		g.logger.Debug("Capping extra principal payment to prevent overpayment",
			zap.String("op", "loans.CalculateExtraPrincipalWithOverpaymentPrevention"),
			zap.Int("month", month),
			zap.Float64("requested", totalExtra),
			zap.Float64("capped_to_balance", currentBalance))
		return math.Max(currentBalance, 0)
	}

	g.logger.Debug(fmt.Sprintf("month %d: applying extra principal payment %.2f", month, totalExtra),
		zap.String("op", "loans.CalculateExtraPrincipalWithOverpaymentPrevention"),
	)
	return totalExtra
}
