package main

import (
	"fmt"
	"strings"

	"github.com/iwvelando/omnicalc/pkg/format"
	"github.com/iwvelando/omnicalc/pkg/health"
	"github.com/iwvelando/omnicalc/pkg/output"
	"github.com/spf13/cobra"
)

func newBMICommand(a *app) *cobra.Command {
	var (
		weight, height float64
		system         string
	)
	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Body mass index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := health.ParseSystem(system)
			if err != nil {
				return err
			}
			result, err := health.BMI(weight, height, sys)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Body Mass Index",
				Rows: []output.Row{
					{Label: "BMI", Value: format.Number(result.BMI, 1)},
					{Label: "Category", Value: result.Category},
				},
				Data: result,
			})
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg (lb for imperial)")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm (in for imperial)")
	cmd.Flags().StringVar(&system, "system", string(health.Metric), "unit system: metric or imperial")
	return cmd
}

func newBMRCommand(a *app) *cobra.Command {
	var (
		weight, height float64
		age            int
		sex            string
	)
	cmd := &cobra.Command{
		Use:   "bmr",
		Short: "Basal metabolic rate and daily calorie needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := health.ParseSex(sex)
			if err != nil {
				return err
			}
			result, err := health.BMR(weight, height, age, s)
			if err != nil {
				return err
			}

			rows := []output.Row{{Label: "BMR", Value: format.Number(result.BMR, 0) + " kcal/day"}}
			for _, level := range health.ActivityLevels() {
				rows = append(rows, output.Row{
					Label: fmt.Sprintf("TDEE (%s)", strings.ReplaceAll(string(level), "_", " ")),
					Value: format.Number(result.TDEE[level], 0) + " kcal/day",
				})
			}
			return a.render(cmd, output.Report{Title: "Basal Metabolic Rate", Rows: rows, Data: result})
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	return cmd
}

func newIdealWeightCommand(a *app) *cobra.Command {
	var (
		height float64
		sex    string
	)
	cmd := &cobra.Command{
		Use:   "ideal-weight",
		Short: "Ideal body weight estimates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := health.ParseSex(sex)
			if err != nil {
				return err
			}
			result, err := health.IdealWeight(height, s)
			if err != nil {
				return err
			}
			return a.render(cmd, output.Report{
				Title: "Ideal Weight",
				Rows: []output.Row{
					{Label: "Devine", Value: format.Number(result.Devine, 1) + " kg"},
					{Label: "Hamwi", Value: format.Number(result.Hamwi, 1) + " kg"},
					{Label: "Miller", Value: format.Number(result.Miller, 1) + " kg"},
				},
				Data: result,
			})
		},
	}
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	return cmd
}
