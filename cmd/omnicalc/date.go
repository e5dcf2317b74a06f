package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/omnicalc/pkg/bikram"
	"github.com/iwvelando/omnicalc/pkg/datetime"
	"github.com/iwvelando/omnicalc/pkg/format"
	"github.com/iwvelando/omnicalc/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const timezoneLayout = "2006-01-02T15:04"

// parseYMD splits "YYYY-MM-DD" into integers without checking it against
// any calendar, so BS dates such as 2080-02-32 survive.
func parseYMD(value string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if nums[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
		}
	}
	return nums[0], nums[1], nums[2], nil
}

func newDateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Calendar conversion and date arithmetic",
	}
	cmd.AddCommand(
		newAdToBsCommand(a),
		newBsToAdCommand(a),
		newAgeCommand(a),
		newDiffCommand(a),
		newAddDaysCommand(a),
		newTimezoneCommand(a),
	)
	return cmd
}

func newAdToBsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ad-to-bs [YYYY-MM-DD]",
		Short: "Convert a Gregorian date to Bikram Sambat (defaults to today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				bs  bikram.BsDate
				err error
			)
			if len(args) == 0 {
				bs, err = bikram.TodayBs(time.Now())
			} else {
				year, month, day, perr := parseYMD(args[0])
				if perr != nil {
					return perr
				}
				bs, err = bikram.AdToBs(year, month, day)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("converted AD to BS",
				zap.String("op", "main.adToBs"),
				zap.String("bs", bs.String()),
			)

			return a.render(cmd, output.Report{
				Title: "Bikram Sambat Date",
				Rows: []output.Row{
					{Label: "BS Date", Value: bs.String()},
					{Label: "Month", Value: fmt.Sprintf("%d (%s)", bs.Month, bs.MonthName)},
				},
				Data: bs,
			})
		},
	}
}

func newBsToAdCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bs-to-ad YYYY-MM-DD",
		Short: "Convert a Bikram Sambat date to Gregorian",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, day, err := parseYMD(args[0])
			if err != nil {
				return err
			}
			ad, err := bikram.BsToAd(year, month, day)
			if err != nil {
				return err
			}
			a.logger.Debug("converted BS to AD",
				zap.String("op", "main.bsToAd"),
				zap.String("ad", ad.String()),
			)

			return a.render(cmd, output.Report{
				Title: "Gregorian Date",
				Rows: []output.Row{
					{Label: "AD Date", Value: ad.String()},
					{Label: "Date", Value: ad.Time().Format(datetime.DateLayout)},
					{Label: "Long", Value: format.LongDate(ad.Time())},
				},
				Data: ad,
			})
		},
	}
}

func spanRows(span datetime.Span) []output.Row {
	return []output.Row{
		{Label: "Years", Value: format.Integer(span.Years)},
		{Label: "Months", Value: format.Integer(span.Months)},
		{Label: "Days", Value: format.Integer(span.Days)},
		{Label: "Total days", Value: format.Integer(span.TotalDays)},
	}
}

func newAgeCommand(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "age BIRTH_DATE",
		Short: "Age in years, months and days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := datetime.ParseDate(args[0])
			if err != nil {
				return err
			}
			today := time.Now()
			if on != "" {
				if today, err = datetime.ParseDate(on); err != nil {
					return err
				}
			}
			span, err := datetime.Age(birth, today)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Age on " + format.LongDate(today),
				Rows:  spanRows(span),
				Data:  span,
			})
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "date to compute the age on (default today)")
	return cmd
}

func newDiffCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff START END",
		Short: "Distance between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := datetime.ParseDate(args[0])
			if err != nil {
				return err
			}
			end, err := datetime.ParseDate(args[1])
			if err != nil {
				return err
			}
			span, err := datetime.Difference(start, end)
			if err != nil {
				return err
			}
			rows := append(spanRows(span), output.Row{Label: "Total hours", Value: format.Integer(span.TotalHours)})
			return a.render(cmd, output.Report{Title: "Date Difference", Rows: rows, Data: span})
		},
	}
}

func newAddDaysCommand(a *app) *cobra.Command {
	var subtract bool
	cmd := &cobra.Command{
		Use:   "add DATE DAYS",
		Short: "Add (or with --subtract, subtract) days from a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := datetime.ParseDate(args[0])
			if err != nil {
				return err
			}
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q: %w", args[1], err)
			}
			result := datetime.AddDays(start, days)
			if subtract {
				result = datetime.SubtractDays(start, days)
			}
			return a.render(cmd, output.Report{
				Title: "Resulting Date",
				Rows: []output.Row{
					{Label: "Date", Value: result.Format(datetime.DateLayout)},
					{Label: "Long", Value: format.LongDate(result)},
				},
				Data: map[string]string{"date": result.Format(datetime.DateLayout)},
			})
		},
	}
	cmd.Flags().BoolVar(&subtract, "subtract", false, "subtract the days instead of adding them")
	return cmd
}

func newTimezoneCommand(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "tz YYYY-MM-DDTHH:MM",
		Short: "Convert a wall clock time between time zones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wall, err := time.Parse(timezoneLayout, args[0])
			if err != nil {
				return fmt.Errorf("invalid date time %q, expected YYYY-MM-DDTHH:MM", args[0])
			}
			converted, err := datetime.ConvertTimezone(wall, from, to)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Time Zone Conversion",
				Rows: []output.Row{
					{Label: from, Value: wall.Format(timezoneLayout)},
					{Label: to, Value: converted.Format(timezoneLayout + " -07:00")},
				},
				Data: map[string]string{"dateTime": converted.Format(timezoneLayout), "zone": to},
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "UTC", "source IANA time zone")
	cmd.Flags().StringVar(&to, "to", "Local", "target IANA time zone")
	return cmd
}
