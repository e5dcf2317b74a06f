package loans

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		downPayment        float64
		annualInterestRate float64
		termMonths         int
		expectedRange      []float64 // [min, max] expected range
	}{
		{
			name:               "Standard 30-year mortgage",
			principal:          300000,
			downPayment:        60000, // 20%
			annualInterestRate: 6.0,
			termMonths:         360,
			expectedRange:      []float64{1400, 1500}, // Around $1439
		},
		{
			name:               "5-year car loan",
			principal:          25000,
			downPayment:        5000,
			annualInterestRate: 4.0,
			termMonths:         60,
			expectedRange:      []float64{360, 380}, // Around $368
		},
		{
			name:               "Zero interest loan",
			principal:          12000,
			downPayment:        2000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expectedRange:      []float64{166, 167}, // Exactly $166.67
		},
		{
			name:               "100% down payment",
			principal:          50000,
			downPayment:        50000,
			annualInterestRate: 5.0,
			termMonths:         60,
			expectedRange:      []float64{0, 0}, // Should be 0
		},
		{
			name:               "Zero term",
			principal:          1000,
			downPayment:        0,
			annualInterestRate: 5.0,
			termMonths:         0,
			expectedRange:      []float64{0, 0},
		},
		{
			name:               "High interest loan",
			principal:          10000,
			downPayment:        0,
			annualInterestRate: 18.0,
			termMonths:         36,
			expectedRange:      []float64{360, 380}, // Around $372
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.downPayment, tt.annualInterestRate, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualInterestRate float64
		expected           float64
	}{
		{
			name:               "Standard mortgage interest",
			remainingPrincipal: 200000,
			annualInterestRate: 6.0,
			expected:           1000.0, // 200000 * 0.06 / 12
		},
		{
			name:               "Car loan interest",
			remainingPrincipal: 15000,
			annualInterestRate: 4.5,
			expected:           56.25, // 15000 * 0.045 / 12
		},
		{
			name:               "Zero interest",
			remainingPrincipal: 10000,
			annualInterestRate: 0.0,
			expected:           0.0,
		},
		{
			name:               "High interest",
			remainingPrincipal: 5000,
			annualInterestRate: 24.0,
			expected:           100.0, // 5000 * 0.24 / 12
		},
		{
			name:               "Very small principal",
			remainingPrincipal: 100,
			annualInterestRate: 6.0,
			expected:           0.5, // 100 * 0.06 / 12
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualInterestRate)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		req      LoanRequest
		expected Summary
	}{
		{
			name: "30-year mortgage with 20% down",
			req:  LoanRequest{Principal: 300000, DownPayment: 60000, InterestRate: 6.0, TermYears: 30},
			expected: Summary{
				AmountFinanced: 240000,
				MonthlyPayment: 1438.92,
				TotalPayment:   518011.65,
				TotalInterest:  278011.65,
				TermMonths:     360,
			},
		},
		{
			name: "5-year car loan",
			req:  LoanRequest{Principal: 20000, InterestRate: 4.0, TermYears: 5},
			expected: Summary{
				AmountFinanced: 20000,
				MonthlyPayment: 368.33,
				TotalPayment:   22099.83,
				TotalInterest:  2099.83,
				TermMonths:     60,
			},
		},
		{
			name: "Zero interest",
			req:  LoanRequest{Principal: 10000, InterestRate: 0, TermYears: 1},
			expected: Summary{
				AmountFinanced: 10000,
				MonthlyPayment: 833.33,
				TotalPayment:   10000,
				TotalInterest:  0,
				TermMonths:     12,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Summarize(tt.req)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("Summarize() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestSummarizeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		req    LoanRequest
		reason error
	}{
		{name: "Zero principal", req: LoanRequest{Principal: 0, InterestRate: 5, TermYears: 5}, reason: ErrInvalidPrincipal},
		{name: "Down payment covers principal", req: LoanRequest{Principal: 5000, DownPayment: 5000, InterestRate: 5, TermYears: 5}, reason: ErrInvalidPrincipal},
		{name: "Negative down payment", req: LoanRequest{Principal: 5000, DownPayment: -1, InterestRate: 5, TermYears: 5}, reason: ErrInvalidPrincipal},
		{name: "Zero term", req: LoanRequest{Principal: 5000, InterestRate: 5, TermYears: 0}, reason: ErrInvalidTerm},
		{name: "Negative rate", req: LoanRequest{Principal: 5000, InterestRate: -1, TermYears: 5}, reason: ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(tt.req)
			if !errors.Is(err, tt.reason) {
				t.Errorf("Summarize() error = %v, expected %v", err, tt.reason)
			}
		})
	}
}

func TestMortgage(t *testing.T) {
	result, err := Mortgage(300000, 60000, 6.0, 30)
	if err != nil {
		t.Fatalf("Mortgage() error = %v", err)
	}
	if result.AmountFinanced != 240000 || result.MonthlyPayment != 1438.92 {
		t.Errorf("Mortgage() = %+v, expected 240000 financed at 1438.92", result)
	}

	if _, err := Mortgage(300000, 300000, 6.0, 30); !errors.Is(err, ErrDownPaymentExceedsPrice) {
		t.Errorf("Mortgage() error = %v, expected ErrDownPaymentExceedsPrice", err)
	}
	if _, err := Mortgage(0, 0, 6.0, 30); !errors.Is(err, ErrInvalidPrincipal) {
		t.Errorf("Mortgage() error = %v, expected ErrInvalidPrincipal", err)
	}
}

func TestCalculateExtraPrincipal(t *testing.T) {
	events := []Event{
		{Name: "Bonus", Amount: 1000, StartMonth: 3},
		{Name: "Quarterly", Amount: 250, StartMonth: 2, EndMonth: 11, Frequency: 3},
	}

	tests := []struct {
		month    int
		expected float64
	}{
		{month: 1, expected: 0},
		{month: 2, expected: 250},
		{month: 3, expected: 1000},
		{month: 5, expected: 250},
		{month: 11, expected: 250},
		{month: 14, expected: 0},
	}

	for _, tt := range tests {
		if result := CalculateExtraPrincipal(events, tt.month); result != tt.expected {
			t.Errorf("CalculateExtraPrincipal(month %d) = %.2f, expected %.2f", tt.month, result, tt.expected)
		}
	}
}

func TestGenerateSchedule(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(zaptest.NewLogger(t))

	schedule, err := generator.GenerateSchedule(ScheduleRequest{
		LoanRequest: LoanRequest{Principal: 10000, InterestRate: 12.0, TermYears: 1},
		StartDate:   "2024-01-31",
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if schedule.PayoffMonths != 12 || len(schedule.Payments) != 12 {
		t.Fatalf("GenerateSchedule() produced %d payments, expected 12", len(schedule.Payments))
	}
	if schedule.MonthlyPayment != 888.49 {
		t.Errorf("MonthlyPayment = %.2f, expected 888.49", schedule.MonthlyPayment)
	}
	if schedule.TotalInterest != 661.85 {
		t.Errorf("TotalInterest = %.2f, expected 661.85", schedule.TotalInterest)
	}

	first := schedule.Payments[0]
	if first.Interest != 100.00 || first.Principal != 788.49 || first.RemainingPrincipal != 9211.51 {
		t.Errorf("first payment = %+v", first)
	}
	if first.Date != "2024-01-31" {
		t.Errorf("first payment date = %s, expected 2024-01-31", first.Date)
	}

	second := schedule.Payments[1]
	if second.Interest != 92.12 || second.Principal != 796.37 || second.RemainingPrincipal != 8415.14 {
		t.Errorf("second payment = %+v", second)
	}

	last := schedule.Payments[len(schedule.Payments)-1]
	if last.RemainingPrincipal != 0 {
		t.Errorf("last payment leaves %.2f outstanding", last.RemainingPrincipal)
	}

	principal := 0.0
	for _, p := range schedule.Payments {
		principal += p.Principal
	}
	if math.Abs(principal-10000) > 0.05 {
		t.Errorf("principal repaid = %.2f, expected 10000", principal)
	}
}

func TestGenerateScheduleWithExtraPrincipal(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(zap.NewNop())

	schedule, err := generator.GenerateSchedule(ScheduleRequest{
		LoanRequest:   LoanRequest{Principal: 10000, InterestRate: 12.0, TermYears: 1},
		ExtraPayments: []Event{{Amount: 2000, StartMonth: 1}},
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if schedule.PayoffMonths != 10 {
		t.Errorf("PayoffMonths = %d, expected 10", schedule.PayoffMonths)
	}
	if schedule.TotalInterest != 448.18 {
		t.Errorf("TotalInterest = %.2f, expected 448.18", schedule.TotalInterest)
	}
	if schedule.Payments[0].ExtraPrincipal != 2000 {
		t.Errorf("first extra principal = %.2f, expected 2000", schedule.Payments[0].ExtraPrincipal)
	}
	if schedule.Payments[0].Date != "" {
		t.Errorf("expected no dates without a start date, got %s", schedule.Payments[0].Date)
	}
}

func TestGenerateScheduleCapsOverpayment(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(nil)

	schedule, err := generator.GenerateSchedule(ScheduleRequest{
		LoanRequest:   LoanRequest{Principal: 5000, InterestRate: 6.0, TermYears: 5},
		ExtraPayments: []Event{{Amount: 100000, StartMonth: 2}},
	})
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	if schedule.PayoffMonths != 2 {
		t.Fatalf("PayoffMonths = %d, expected 2", schedule.PayoffMonths)
	}
	second := schedule.Payments[1]
	if second.RemainingPrincipal != 0 {
		t.Errorf("remaining principal = %.2f, expected 0", second.RemainingPrincipal)
	}
	if second.ExtraPrincipal >= 5000 {
		t.Errorf("extra principal %.2f was not capped to the balance", second.ExtraPrincipal)
	}
}

func TestGenerateScheduleInvalid(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(nil)

	if _, err := generator.GenerateSchedule(ScheduleRequest{LoanRequest: LoanRequest{Principal: 1000, TermYears: 0}}); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("GenerateSchedule() error = %v, expected ErrInvalidTerm", err)
	}
	if _, err := generator.GenerateSchedule(ScheduleRequest{
		LoanRequest: LoanRequest{Principal: 1000, TermYears: 1},
		StartDate:   "not-a-date",
	}); err == nil {
		t.Errorf("GenerateSchedule() expected error for bad start date")
	}
}
