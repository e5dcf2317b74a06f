package health

import (
	"fmt"

	"github.com/iwvelando/omnicalc/pkg/mathutil"
)

// ActivityLevel names a daily energy expenditure multiplier.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "light"
	ModeratelyActive ActivityLevel = "moderate"
	VeryActive       ActivityLevel = "active"
	ExtraActive      ActivityLevel = "very_active"
)

var activityFactors = []struct {
	level  ActivityLevel
	factor float64
}{
	{Sedentary, 1.2},
	{LightlyActive, 1.375},
	{ModeratelyActive, 1.55},
	{VeryActive, 1.725},
	{ExtraActive, 1.9},
}

// ActivityLevels returns the known levels from least to most active.
func ActivityLevels() []ActivityLevel {
	levels := make([]ActivityLevel, len(activityFactors))
	for i, a := range activityFactors {
		levels[i] = a.level
	}
	return levels
}

// ActivityFactor returns the multiplier for a level.
func ActivityFactor(level ActivityLevel) (float64, error) {
	for _, a := range activityFactors {
		if a.level == level {
			return a.factor, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivity, level)
}

// BMRResult holds the basal metabolic rate and the daily energy need at
// every activity level, both in kcal/day.
type BMRResult struct {
	BMR  float64                   `json:"bmr"`
	TDEE map[ActivityLevel]float64 `json:"tdee"`
}

// BMR computes the basal metabolic rate with the revised Harris-Benedict
// equations from kilograms, centimeters and years.
func BMR(weightKg, heightCm float64, ageYears int, sex Sex) (BMRResult, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return BMRResult{}, fmt.Errorf("%w: weight %.2f, height %.2f, age %d", ErrInvalidMeasurement, weightKg, heightCm, ageYears)
	}

	age := float64(ageYears)
	var bmr float64
	switch sex {
	case Male:
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	case Female:
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
	default:
		return BMRResult{}, fmt.Errorf("%w: %q", ErrUnknownSex, sex)
	}

	tdee := make(map[ActivityLevel]float64, len(activityFactors))
	for _, a := range activityFactors {
		tdee[a.level] = mathutil.Round(bmr * a.factor)
	}
	return BMRResult{BMR: mathutil.Round(bmr), TDEE: tdee}, nil
}

// TDEE returns the total daily energy expenditure for a BMR and activity level.
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	factor, err := ActivityFactor(level)
	if err != nil {
		return 0, err
	}
	return mathutil.Round(bmr * factor), nil
}
