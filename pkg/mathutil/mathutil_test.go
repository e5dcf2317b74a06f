package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int
		expected float64
	}{
		{"Six places", 3.28083989501, 6, 3.28084},
		{"One place", 22.857, 1, 22.9},
		{"Zero places", 2.5, 0, 3},
		{"Negative places treated as zero", 7.4, -2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundTo(tt.input, tt.places)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RoundTo(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Large positive", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("IsFinite(1.5) = false, expected true")
	}
	if IsFinite(math.NaN()) {
		t.Error("IsFinite(NaN) = true, expected false")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("IsFinite(-Inf) = true, expected false")
	}
}

func TestPercentToRate(t *testing.T) {
	if result := PercentToRate(6.0); math.Abs(result-0.005) > 1e-12 {
		t.Errorf("PercentToRate(6) = %v, expected 0.005", result)
	}
	if result := ApplyPercentage(200, 15); math.Abs(result-30) > 1e-12 {
		t.Errorf("ApplyPercentage(200, 15) = %v, expected 30", result)
	}
	if !WithinTolerance(1.0, 1.005, 0.01) {
		t.Error("WithinTolerance(1.0, 1.005, 0.01) = false, expected true")
	}
}
