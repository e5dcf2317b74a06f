package health

import (
	"fmt"

	"github.com/iwvelando/omnicalc/pkg/constants"
	"github.com/iwvelando/omnicalc/pkg/mathutil"
)

// IdealWeightResult holds ideal body weight estimates in kilograms.
type IdealWeightResult struct {
	Devine float64 `json:"devine"`
	Hamwi  float64 `json:"hamwi"`
	Miller float64 `json:"miller"`
}

type idealFormula struct {
	base, perInch float64
}

var idealFormulas = map[Sex][3]idealFormula{
	Male:   {{50, 2.3}, {48, 2.7}, {56.2, 1.41}},
	Female: {{45.5, 2.3}, {45.5, 2.2}, {53.1, 1.36}},
}

// IdealWeight estimates ideal weight from height in centimeters using the
// Devine, Hamwi and Miller formulas. Each formula adds a fixed amount per
// inch over five feet.
func IdealWeight(heightCm float64, sex Sex) (IdealWeightResult, error) {
	if heightCm <= 0 {
		return IdealWeightResult{}, fmt.Errorf("%w: height %.2f", ErrInvalidMeasurement, heightCm)
	}
	formulas, ok := idealFormulas[sex]
	if !ok {
		return IdealWeightResult{}, fmt.Errorf("%w: %q", ErrUnknownSex, sex)
	}

	over := heightCm/constants.CentimetersPerInch - constants.BaseHeightInches
	estimate := func(f idealFormula) float64 {
		return mathutil.RoundTo(f.base+f.perInch*over, 1)
	}

	return IdealWeightResult{
		Devine: estimate(formulas[0]),
		Hamwi:  estimate(formulas[1]),
		Miller: estimate(formulas[2]),
	}, nil
}
