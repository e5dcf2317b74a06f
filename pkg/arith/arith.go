// Package arith implements the calculator's binary operators, scientific
// functions and left-to-right operation chains.
package arith

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/omnicalc/pkg/mathutil"
)

var (
	// ErrDivideByZero is returned for division or modulo by zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrDomain is returned when a function is undefined for its argument.
	ErrDomain = errors.New("argument outside function domain")
	// ErrUnknownOperator is returned for an unrecognized operator.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrUnknownFunction is returned for an unrecognized function or constant.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrOverflow is returned when a result is not a finite number.
	ErrOverflow = errors.New("result is not finite")
)

// Operator is a binary arithmetic operator.
type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"
	Modulo   Operator = "%"
)

// ParseOperator accepts ASCII operators and the keypad symbols × ÷ −.
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "×", "x":
		return Multiply, nil
	case "/", "÷":
		return Divide, nil
	case "%":
		return Modulo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Apply evaluates a op b.
func Apply(a, b float64, op Operator) (float64, error) {
	var result float64
	switch op {
	case Add:
		result = a + b
	case Subtract:
		result = a - b
	case Multiply:
		result = a * b
	case Divide:
		if b == 0 {
			return 0, fmt.Errorf("%w: %g / 0", ErrDivideByZero, a)
		}
		result = a / b
	case Modulo:
		if b == 0 {
			return 0, fmt.Errorf("%w: %g %% 0", ErrDivideByZero, a)
		}
		result = math.Mod(a, b)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	return finite(result)
}

// Step is one operator and right-hand operand of a chain.
type Step struct {
	Op    Operator `json:"op"`
	Value float64  `json:"value"`
}

// Chain folds steps into initial from left to right with no operator
// precedence, the way a pocket calculator does.
func Chain(initial float64, steps []Step) (float64, error) {
	acc := initial
	for i, step := range steps {
		next, err := Apply(acc, step.Value, step.Op)
		if err != nil {
			return 0, fmt.Errorf("step %d: %w", i+1, err)
		}
		acc = next
	}
	return acc, nil
}

// Functions lists the names accepted by Function.
func Functions() []string {
	return []string{"sin", "cos", "tan", "log", "ln", "sqrt", "square", "cube", "reciprocal"}
}

// Function applies a named single-argument function. Trigonometric
// functions take degrees.
func Function(name string, x float64) (float64, error) {
	var result float64
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sin":
		result = trig(math.Sin(degrees(x)))
	case "cos":
		result = trig(math.Cos(degrees(x)))
	case "tan":
		if trig(math.Cos(degrees(x))) == 0 {
			return 0, fmt.Errorf("%w: tan(%g°)", ErrDomain, x)
		}
		result = trig(math.Tan(degrees(x)))
	case "log":
		if x <= 0 {
			return 0, fmt.Errorf("%w: log(%g)", ErrDomain, x)
		}
		result = math.Log10(x)
	case "ln":
		if x <= 0 {
			return 0, fmt.Errorf("%w: ln(%g)", ErrDomain, x)
		}
		result = math.Log(x)
	case "sqrt":
		if x < 0 {
			return 0, fmt.Errorf("%w: sqrt(%g)", ErrDomain, x)
		}
		result = math.Sqrt(x)
	case "square":
		result = x * x
	case "cube":
		result = x * x * x
	case "reciprocal":
		if x == 0 {
			return 0, fmt.Errorf("%w: 1/0", ErrDivideByZero)
		}
		result = 1 / x
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return finite(result)
}

// Constant returns pi or e.
func Constant(name string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pi", "π":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
}

func degrees(x float64) float64 {
	return x * math.Pi / 180
}

// trig drops the floating point noise left at exact angles, so sin(180°) is 0.
func trig(v float64) float64 {
	return mathutil.RoundTo(v, 12) + 0
}

func finite(v float64) (float64, error) {
	if !mathutil.IsFinite(v) {
		return 0, fmt.Errorf("%w: %g", ErrOverflow, v)
	}
	return v, nil
}
