// Package finance provides investment growth calculations.
package finance

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrInvalidAmount is returned for negative principal or contributions.
	ErrInvalidAmount = errors.New("amounts cannot be negative")
	// ErrInvalidPeriod is returned when the investment period is not positive.
	ErrInvalidPeriod = errors.New("period must be greater than zero")
	// ErrInvalidRate is returned for rates outside their allowed range.
	ErrInvalidRate = errors.New("rate out of range")
)

// InvestmentRequest describes a lump sum plus equal monthly contributions
// compounding monthly. TaxRate, when set, is taken out of each month's growth.
type InvestmentRequest struct {
	Principal           float64 `json:"principal" validate:"gte=0"`
	MonthlyContribution float64 `json:"monthlyContribution" validate:"gte=0"`
	AnnualReturnRate    float64 `json:"annualReturnRate" validate:"gte=0,lte=100"`
	Years               int     `json:"years" validate:"gt=0,lte=100"`
	TaxRate             float64 `json:"taxRate,omitempty" validate:"gte=0,lt=100"`
}

// InvestmentResult holds the value at the end of the period.
type InvestmentResult struct {
	FutureValue        float64 `json:"futureValue"`
	TotalContributions float64 `json:"totalContributions"`
	TotalEarnings      float64 `json:"totalEarnings"`
}

// YearBalance is the state of the investment at the end of a year.
type YearBalance struct {
	Year          int     `json:"year"`
	Contributions float64 `json:"contributions"`
	Earnings      float64 `json:"earnings"`
	Tax           float64 `json:"tax,omitempty"`
	Balance       float64 `json:"balance"`
}

// Validate checks the request.
func (r InvestmentRequest) Validate() error {
	switch {
	case r.Principal < 0 || r.MonthlyContribution < 0:
		return fmt.Errorf("%w: principal %.2f, contribution %.2f", ErrInvalidAmount, r.Principal, r.MonthlyContribution)
	case r.Years <= 0:
		return fmt.Errorf("%w: %d years", ErrInvalidPeriod, r.Years)
	case r.AnnualReturnRate < 0:
		return fmt.Errorf("%w: return %.2f%%", ErrInvalidRate, r.AnnualReturnRate)
	case r.TaxRate < 0 || r.TaxRate >= constants.PercentageMultiplier:
		return fmt.Errorf("%w: tax %.2f%%", ErrInvalidRate, r.TaxRate)
	}
	return nil
}

// monthlyRate is the after-tax periodic growth rate.
func (r InvestmentRequest) monthlyRate() float64 {
	return mathutil.PercentToRate(r.AnnualReturnRate) * (1 - r.TaxRate/constants.PercentageMultiplier)
}

// FutureValue computes the closed-form value of the investment with
// contributions made at the end of each month.
func FutureValue(req InvestmentRequest) (InvestmentResult, error) {
	if err := req.Validate(); err != nil {
		return InvestmentResult{}, err
	}

	n := float64(req.Years * constants.MonthsPerYear)
	r := req.monthlyRate()

	var value float64
	if r == 0 {
		value = req.Principal + req.MonthlyContribution*n
	} else {
		growth := math.Pow(1+r, n)
		value = req.Principal*growth + req.MonthlyContribution*(growth-1)/r
	}

	contributed := req.Principal + req.MonthlyContribution*n
	return InvestmentResult{
		FutureValue:        mathutil.Round(value),
		TotalContributions: mathutil.Round(contributed),
		TotalEarnings:      mathutil.Round(value - contributed),
	}, nil
}

// InvestmentState tracks the running value of an investment across months.
type InvestmentState struct {
	CurrentValue  float64
	Contributions float64
	Earnings      float64
	Tax           float64
}

// InvestmentChange captures the computed deltas for a single month.
type InvestmentChange struct {
	Contribution    float64
	Growth          float64
	GrowthBeforeTax float64
	Tax             float64
	NetChange       float64
}

// InvestmentProcessor handles monthly investment computations.
type InvestmentProcessor struct {
	logger *zap.Logger
}

// NewInvestmentProcessor creates a processor for investment calculations.
func NewInvestmentProcessor(logger *zap.Logger) *InvestmentProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentProcessor{logger: logger}
}

// ProcessMonth applies one month of growth followed by the contribution.
func (ip *InvestmentProcessor) ProcessMonth(req InvestmentRequest, state *InvestmentState) InvestmentChange {
	previousValue := state.CurrentValue

	growthBeforeTax := state.CurrentValue * mathutil.PercentToRate(req.AnnualReturnRate)
	tax := 0.0
	if growthBeforeTax > 0 && req.TaxRate > 0 {
		tax = growthBeforeTax * req.TaxRate / constants.PercentageMultiplier
	}
	afterTaxGrowth := growthBeforeTax - tax

	state.CurrentValue += afterTaxGrowth + req.MonthlyContribution
	state.Contributions += req.MonthlyContribution
	state.Earnings += afterTaxGrowth
	state.Tax += tax

	return InvestmentChange{
		Contribution:    req.MonthlyContribution,
		Growth:          afterTaxGrowth,
		GrowthBeforeTax: growthBeforeTax,
		Tax:             tax,
		NetChange:       state.CurrentValue - previousValue,
	}
}

// GrowthSchedule simulates the investment month by month and reports the
// balance at the end of every year.
func (ip *InvestmentProcessor) GrowthSchedule(req InvestmentRequest) ([]YearBalance, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	state := &InvestmentState{CurrentValue: req.Principal, Contributions: req.Principal}
	years := make([]YearBalance, 0, req.Years)

	for year := 1; year <= req.Years; year++ {
		for month := 0; month < constants.MonthsPerYear; month++ {
			ip.ProcessMonth(req, state)
		}
		years = append(years, YearBalance{
			Year:          year,
			Contributions: mathutil.Round(state.Contributions),
			Earnings:      mathutil.Round(state.Earnings),
			Tax:           mathutil.Round(state.Tax),
			Balance:       mathutil.Round(state.CurrentValue),
		})
	}

	ip.logger.Debug(fmt.Sprintf("simulated %d years of growth", req.Years),
		zap.String("op", "finance.GrowthSchedule"),
		zap.Float64("balance", state.CurrentValue),
	)
	return years, nil
}
