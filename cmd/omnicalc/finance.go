package main

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/omnicalc/pkg/finance"
	"github.com/iwvelando/omnicalc/pkg/format"
	"github.com/iwvelando/omnicalc/pkg/loans"
	"github.com/iwvelando/omnicalc/pkg/output"
	"github.com/spf13/cobra"
)

func summaryRows(s loans.Summary) []output.Row {
	return []output.Row{
		{Label: "Amount financed", Value: format.Currency(s.AmountFinanced)},
		{Label: "Monthly payment", Value: format.Currency(s.MonthlyPayment)},
		{Label: "Total payment", Value: format.Currency(s.TotalPayment)},
		{Label: "Total interest", Value: format.Currency(s.TotalInterest)},
		{Label: "Payments", Value: format.Integer(s.TermMonths)},
	}
}

func addLoanFlags(cmd *cobra.Command, req *loans.LoanRequest) {
	cmd.Flags().Float64Var(&req.Principal, "principal", 0, "loan amount")
	cmd.Flags().Float64Var(&req.DownPayment, "down-payment", 0, "amount paid up front")
	cmd.Flags().Float64Var(&req.InterestRate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&req.TermYears, "years", 0, "loan term in years")
}

func newLoanCommand(a *app) *cobra.Command {
	var req loans.LoanRequest
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Monthly payment and total interest of a fixed-rate loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := loans.Summarize(req)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{Title: "Loan Summary", Rows: summaryRows(summary), Data: summary})
		},
	}
	addLoanFlags(cmd, &req)
	return cmd
}

func newMortgageCommand(a *app) *cobra.Command {
	var (
		price, down, rate float64
		years             int
	)
	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Monthly payment of a home loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := loans.Mortgage(price, down, rate, years)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{Title: "Mortgage Summary", Rows: summaryRows(summary), Data: summary})
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "home price")
	cmd.Flags().Float64Var(&down, "down-payment", 0, "down payment")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&years, "years", 30, "loan term in years")
	return cmd
}

func newInvestmentCommand(a *app) *cobra.Command {
	var req finance.InvestmentRequest
	cmd := &cobra.Command{
		Use:   "investment",
		Short: "Future value of a lump sum plus monthly contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := finance.FutureValue(req)
			if err != nil {
				return err
			}
			schedule, err := finance.NewInvestmentProcessor(a.logger).GrowthSchedule(req)
			if err != nil {
				return err
			}

			table := &output.Table{Header: []string{"Year", "Contributions", "Earnings", "Balance"}}
			for _, y := range schedule {
				table.Rows = append(table.Rows, []string{
					strconv.Itoa(y.Year),
					format.Currency(y.Contributions),
					format.Currency(y.Earnings),
					format.Currency(y.Balance),
				})
			}

			return a.render(cmd, output.Report{
				Title: "Investment Growth",
				Rows: []output.Row{
					{Label: "Future value", Value: format.Currency(result.FutureValue)},
					{Label: "Total contributions", Value: format.Currency(result.TotalContributions)},
					{Label: "Total earnings", Value: format.Currency(result.TotalEarnings)},
				},
				Table: table,
				Data: struct {
					finance.InvestmentResult
					Schedule []finance.YearBalance `json:"schedule"`
				}{result, schedule},
			})
		},
	}
	cmd.Flags().Float64Var(&req.Principal, "principal", 0, "initial lump sum")
	cmd.Flags().Float64Var(&req.MonthlyContribution, "monthly", 0, "monthly contribution")
	cmd.Flags().Float64Var(&req.AnnualReturnRate, "rate", 0, "annual return in percent")
	cmd.Flags().IntVar(&req.Years, "years", 0, "investment period in years")
	cmd.Flags().Float64Var(&req.TaxRate, "tax-rate", 0, "tax on growth in percent")
	return cmd
}

func newAmortizeCommand(a *app) *cobra.Command {
	var (
		req         loans.ScheduleRequest
		extra       float64
		extraMonth  int
		extraRepeat int
	)
	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Month by month amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if extra > 0 {
				req.ExtraPayments = []loans.Event{{
					Name:       "extra",
					Amount:     extra,
					StartMonth: extraMonth,
					Frequency:  extraRepeat,
				}}
			}
			schedule, err := loans.NewAmortizationScheduleGenerator(a.logger).GenerateSchedule(req)
			if err != nil {
				return err
			}

			table := &output.Table{Header: []string{"Month", "Date", "Payment", "Principal", "Interest", "Extra", "Balance"}}
			for _, p := range schedule.Payments {
				table.Rows = append(table.Rows, []string{
					strconv.Itoa(p.Month),
					p.Date,
					format.Currency(p.Payment),
					format.Currency(p.Principal),
					format.Currency(p.Interest),
					format.Currency(p.ExtraPrincipal),
					format.Currency(p.RemainingPrincipal),
				})
			}

			return a.render(cmd, output.Report{
				Title: "Amortization Schedule",
				Rows: []output.Row{
					{Label: "Monthly payment", Value: format.Currency(schedule.MonthlyPayment)},
					{Label: "Total payment", Value: format.Currency(schedule.TotalPayment)},
					{Label: "Total interest", Value: format.Currency(schedule.TotalInterest)},
					{Label: "Paid off after", Value: fmt.Sprintf("%d months", schedule.PayoffMonths)},
				},
				Table: table,
				Data:  schedule,
			})
		},
	}
	addLoanFlags(cmd, &req.LoanRequest)
	cmd.Flags().StringVar(&req.StartDate, "start", "", "date of the first payment (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&extra, "extra", 0, "extra principal payment")
	cmd.Flags().IntVar(&extraMonth, "extra-month", 1, "month of the first extra payment")
	cmd.Flags().IntVar(&extraRepeat, "extra-every", 0, "repeat the extra payment every N months (0 pays once)")
	return cmd
}
