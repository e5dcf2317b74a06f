// Package health implements body mass index, basal metabolic rate and ideal
// weight calculations.
package health

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/mathutil"
)

var (
	// ErrInvalidMeasurement is returned for non-positive weights, heights or ages.
	ErrInvalidMeasurement = errors.New("measurement must be greater than zero")
	// ErrUnknownSystem is returned for a unit system other than metric or imperial.
	ErrUnknownSystem = errors.New("unknown unit system")
	// ErrUnknownSex is returned for a sex other than male or female.
	ErrUnknownSex = errors.New("sex must be male or female")
	// ErrUnknownActivity is returned for an unrecognized activity level.
	ErrUnknownActivity = errors.New("unknown activity level")
)

// System is the measurement system of BMI inputs.
type System string

const (
	// Metric takes kilograms and centimeters.
	Metric System = "metric"
	// Imperial takes pounds and inches.
	Imperial System = "imperial"
)

// Sex selects the coefficient set of the BMR and ideal weight formulas.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSystem normalizes a unit system name.
func ParseSystem(s string) (System, error) {
	switch System(strings.ToLower(strings.TrimSpace(s))) {
	case Metric, "":
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

// ParseSex normalizes a sex name.
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSex, s)
}

// BMI categories.
const (
	Underweight  = "Underweight"
	NormalWeight = "Normal weight"
	Overweight   = "Overweight"
	Obese        = "Obese"
)

// BMIResult holds a body mass index and its category.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// BMI computes the body mass index. Metric input is kilograms and
// centimeters; imperial input is pounds and inches.
func BMI(weight, height float64, system System) (BMIResult, error) {
	if weight <= 0 || height <= 0 {
		return BMIResult{}, fmt.Errorf("%w: weight %.2f, height %.2f", ErrInvalidMeasurement, weight, height)
	}

	var bmi float64
	switch system {
	case Metric:
		meters := height / 100
		bmi = weight / (meters * meters)
	case Imperial:
		bmi = weight / (height * height) * constants.ImperialBMIFactor
	default:
		return BMIResult{}, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}

	bmi = mathutil.RoundTo(bmi, 1)
	return BMIResult{BMI: bmi, Category: Category(bmi)}, nil
}

// Category classifies a BMI value.
func Category(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return NormalWeight
	case bmi < 30:
		return Overweight
	}
	return Obese
}
