package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/iwvelando/omnicalc/pkg/arith"
	"github.com/iwvelando/omnicalc/pkg/currency"
	"github.com/iwvelando/omnicalc/pkg/format"
	"github.com/iwvelando/omnicalc/pkg/output"
	"github.com/iwvelando/omnicalc/pkg/units"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func parseAmount(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", value, err)
	}
	return v, nil
}

// parseOperand accepts a number or a named constant such as pi.
func parseOperand(value string) (float64, error) {
	if c, err := arith.Constant(value); err == nil {
		return c, nil
	}
	return parseAmount(value)
}

func newUnitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Convert between measurement units",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [CATEGORY]",
		Short: "List unit categories and their units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := units.Categories()
			if len(args) == 1 {
				categories = []units.Category{units.Category(args[0])}
			}
			data := make(map[units.Category][]string, len(categories))
			rows := make([]output.Row, 0, len(categories))
			for _, c := range categories {
				names, err := units.Units(c)
				if err != nil {
					return err
				}
				data[c] = names
				rows = append(rows, output.Row{Label: string(c), Value: fmt.Sprint(names)})
			}
			return a.render(cmd, output.Report{Title: "Units", Rows: rows, Data: data})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "convert CATEGORY VALUE FROM TO",
		Short: "Convert a value, e.g. convert length 5 kilometers miles",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			result, err := units.Convert(units.Category(args[0]), args[2], args[3], value)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Unit Conversion",
				Rows: []output.Row{
					{Label: args[2], Value: format.Number(value, 4)},
					{Label: args[3], Value: format.Number(result, 4)},
				},
				Data: map[string]any{"category": args[0], "from": args[2], "to": args[3], "value": value, "result": result},
			})
		},
	})
	return cmd
}

func newCurrencyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Currency catalog and live conversion",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := currency.Supported()
			table := &output.Table{Header: []string{"Code", "Symbol", "Name"}}
			for _, c := range catalog {
				table.Rows = append(table.Rows, []string{c.Code, c.Symbol, c.Name})
			}
			return a.render(cmd, output.Report{Title: "Supported Currencies", Table: table, Data: catalog})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rates",
		Short: "Fetch the latest exchange rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, err := currency.NewClient(a.conf.CurrencyClientConfig(), a.logger).Latest(cmd.Context())
			if err != nil {
				return err
			}
			supported := rates.Supported()
			codes := make([]string, 0, len(supported))
			for code := range supported {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			rows := make([]output.Row, 0, len(codes))
			for _, code := range codes {
				rows = append(rows, output.Row{Label: code, Value: format.Number(supported[code], 4)})
			}
			return a.render(cmd, output.Report{
				Title: fmt.Sprintf("Rates per 1 %s on %s", rates.Base, rates.Date),
				Rows:  rows,
				Data:  rates,
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount with live rates, e.g. convert 100 USD NPR",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			from, err := currency.Lookup(args[1])
			if err != nil {
				return err
			}
			to, err := currency.Lookup(args[2])
			if err != nil {
				return err
			}

			rates, err := currency.NewClient(a.conf.CurrencyClientConfig(), a.logger).Latest(cmd.Context())
			if err != nil {
				return err
			}
			if rates.Stale {
				a.logger.Warn("using stale exchange rates",
					zap.String("op", "main.currencyConvert"),
					zap.String("date", rates.Date),
				)
			}
			result, err := rates.Convert(amount, from.Code, to.Code)
			if err != nil {
				return err
			}
			rate, err := rates.Rate(from.Code, to.Code)
			if err != nil {
				return err
			}

			return a.render(cmd, output.Report{
				Title: "Currency Conversion",
				Rows: []output.Row{
					{Label: from.Code, Value: format.Money(amount, from.Symbol)},
					{Label: to.Code, Value: format.Money(result, to.Symbol)},
					{Label: "Rate", Value: format.Number(rate, 6)},
					{Label: "Rates date", Value: rates.Date},
				},
				Data: map[string]any{"from": from.Code, "to": to.Code, "amount": amount, "result": result, "rate": rate, "date": rates.Date},
			})
		},
	})
	return cmd
}

func newCalcCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Pocket calculator",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "eval VALUE [OP VALUE]...",
		Short: "Evaluate left to right without precedence, e.g. eval 2 + 3 x 4",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 == 0 {
				return fmt.Errorf("expected VALUE followed by OP VALUE pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			steps := make([]arith.Step, 0, len(args)/2)
			for i := 1; i < len(args); i += 2 {
				op, err := arith.ParseOperator(args[i])
				if err != nil {
					return err
				}
				value, err := parseOperand(args[i+1])
				if err != nil {
					return err
				}
				steps = append(steps, arith.Step{Op: op, Value: value})
			}
			result, err := arith.Chain(initial, steps)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Result",
				Rows:  []output.Row{{Label: "=", Value: strconv.FormatFloat(result, 'g', -1, 64)}},
				Data:  map[string]float64{"result": result},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fn NAME VALUE",
		Short: "Apply a function: sin, cos, tan (degrees), log, ln, sqrt, square, cube, reciprocal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseOperand(args[1])
			if err != nil {
				return err
			}
			result, err := arith.Function(args[0], value)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Result",
				Rows:  []output.Row{{Label: fmt.Sprintf("%s(%s)", args[0], args[1]), Value: strconv.FormatFloat(result, 'g', -1, 64)}},
				Data:  map[string]float64{"result": result},
			})
		},
	})
	return cmd
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the omnicalc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, output.Report{
				Title: "omnicalc",
				Rows:  []output.Row{{Label: "Version", Value: version}},
				Data:  map[string]string{"version": version},
			})
		},
	}
}
