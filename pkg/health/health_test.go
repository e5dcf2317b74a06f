package health

import (
	"errors"
	"math"
	"testing"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		system   System
		expected BMIResult
	}{
		{name: "Metric normal", weight: 70, height: 175, system: Metric, expected: BMIResult{BMI: 22.9, Category: NormalWeight}},
		{name: "Metric underweight", weight: 50, height: 180, system: Metric, expected: BMIResult{BMI: 15.4, Category: Underweight}},
		{name: "Metric obese", weight: 100, height: 170, system: Metric, expected: BMIResult{BMI: 34.6, Category: Obese}},
		{name: "Imperial on the overweight boundary", weight: 150, height: 65, system: Imperial, expected: BMIResult{BMI: 25.0, Category: Overweight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BMI(tt.weight, tt.height, tt.system)
			if err != nil {
				t.Fatalf("BMI() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("BMI() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestBMIInvalid(t *testing.T) {
	if _, err := BMI(0, 170, Metric); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("BMI() error = %v, expected ErrInvalidMeasurement", err)
	}
	if _, err := BMI(70, -1, Metric); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("BMI() error = %v, expected ErrInvalidMeasurement", err)
	}
	if _, err := BMI(70, 170, System("stone")); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("BMI() error = %v, expected ErrUnknownSystem", err)
	}
}

func TestCategory(t *testing.T) {
	tests := map[float64]string{
		18.4: Underweight,
		18.5: NormalWeight,
		24.9: NormalWeight,
		25.0: Overweight,
		29.9: Overweight,
		30.0: Obese,
	}
	for bmi, expected := range tests {
		if result := Category(bmi); result != expected {
			t.Errorf("Category(%.1f) = %s, expected %s", bmi, result, expected)
		}
	}
}

func TestParseSystemAndSex(t *testing.T) {
	if s, err := ParseSystem(" Imperial "); err != nil || s != Imperial {
		t.Errorf("ParseSystem() = %q, %v", s, err)
	}
	if s, err := ParseSystem(""); err != nil || s != Metric {
		t.Errorf("ParseSystem(\"\") = %q, %v, expected metric default", s, err)
	}
	if _, err := ParseSystem("cubits"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("ParseSystem() error = %v", err)
	}
	if s, err := ParseSex("FEMALE"); err != nil || s != Female {
		t.Errorf("ParseSex() = %q, %v", s, err)
	}
	if _, err := ParseSex("other"); !errors.Is(err, ErrUnknownSex) {
		t.Errorf("ParseSex() error = %v", err)
	}
}

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		sex      Sex
		bmr      float64
		moderate float64
	}{
		{name: "Male", weight: 70, height: 175, age: 30, sex: Male, bmr: 1695.67, moderate: 2628.28},
		{name: "Female", weight: 60, height: 165, age: 25, sex: Female, bmr: 1405.33, moderate: 2178.27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BMR(tt.weight, tt.height, tt.age, tt.sex)
			if err != nil {
				t.Fatalf("BMR() error = %v", err)
			}
			if math.Abs(result.BMR-tt.bmr) > 0.011 {
				t.Errorf("BMR() = %.2f, expected %.2f", result.BMR, tt.bmr)
			}
			if math.Abs(result.TDEE[ModeratelyActive]-tt.moderate) > 0.011 {
				t.Errorf("TDEE[moderate] = %.2f, expected %.2f", result.TDEE[ModeratelyActive], tt.moderate)
			}
			if len(result.TDEE) != len(ActivityLevels()) {
				t.Errorf("TDEE has %d levels, expected %d", len(result.TDEE), len(ActivityLevels()))
			}
		})
	}
}

func TestBMRInvalid(t *testing.T) {
	if _, err := BMR(70, 175, 0, Male); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("BMR() error = %v, expected ErrInvalidMeasurement", err)
	}
	if _, err := BMR(70, 175, 30, Sex("x")); !errors.Is(err, ErrUnknownSex) {
		t.Errorf("BMR() error = %v, expected ErrUnknownSex", err)
	}
}

func TestTDEE(t *testing.T) {
	result, err := TDEE(2000, Sedentary)
	if err != nil || result != 2400 {
		t.Errorf("TDEE(2000, sedentary) = %.2f, %v, expected 2400", result, err)
	}
	result, err = TDEE(2000, ExtraActive)
	if err != nil || result != 3800 {
		t.Errorf("TDEE(2000, very_active) = %.2f, %v, expected 3800", result, err)
	}
	if _, err := TDEE(2000, ActivityLevel("couch")); !errors.Is(err, ErrUnknownActivity) {
		t.Errorf("TDEE() error = %v, expected ErrUnknownActivity", err)
	}
}

func TestActivityLevelsOrdered(t *testing.T) {
	levels := ActivityLevels()
	previous := 0.0
	for _, level := range levels {
		factor, err := ActivityFactor(level)
		if err != nil {
			t.Fatalf("ActivityFactor(%s) error = %v", level, err)
		}
		if factor <= previous {
			t.Errorf("activity level %s factor %.3f is not above %.3f", level, factor, previous)
		}
		previous = factor
	}
}

func TestIdealWeight(t *testing.T) {
	tests := []struct {
		name     string
		height   float64
		sex      Sex
		expected IdealWeightResult
	}{
		{name: "Male 175cm", height: 175, sex: Male, expected: IdealWeightResult{Devine: 70.5, Hamwi: 72.0, Miller: 68.7}},
		{name: "Female 165cm", height: 165, sex: Female, expected: IdealWeightResult{Devine: 56.9, Hamwi: 56.4, Miller: 59.8}},
		{name: "Exactly five feet", height: 152.4, sex: Male, expected: IdealWeightResult{Devine: 50, Hamwi: 48, Miller: 56.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := IdealWeight(tt.height, tt.sex)
			if err != nil {
				t.Fatalf("IdealWeight() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("IdealWeight() = %+v, expected %+v", result, tt.expected)
			}
		})
	}

	if _, err := IdealWeight(0, Male); !errors.Is(err, ErrInvalidMeasurement) {
		t.Errorf("IdealWeight() error = %v, expected ErrInvalidMeasurement", err)
	}
}
