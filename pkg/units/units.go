// Package units converts between measurement units within a category.
package units

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for a category that is not registered.
	ErrUnknownCategory = errors.New("unknown unit category")
	// ErrUnknownUnit is returned for a unit outside the requested category.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrBelowAbsoluteZero is returned for temperatures below 0 K.
	ErrBelowAbsoluteZero = errors.New("temperature below absolute zero")
)

// Category names a family of mutually convertible units.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Volume      Category = "volume"
	Area        Category = "area"
	Speed       Category = "speed"
)

// unit converts to and from its category's base unit.
type unit struct {
	name   string
	toBase func(float64) float64
	from   func(float64) float64
}

func linear(name string, factor float64) unit {
	return unit{
		name:   name,
		toBase: func(v float64) float64 { return v * factor },
		from:   func(v float64) float64 { return v / factor },
	}
}

type category struct {
	name  Category
	base  string
	units []unit
}

// Base units: meters, kilograms, celsius, liters, square meters, meters per second.
var categories = []category{
	{name: Length, base: "meters", units: []unit{
		linear("meters", 1),
		linear("kilometers", 1000),
		linear("centimeters", 0.01),
		linear("miles", 1609.34),
		linear("yards", 0.9144),
		linear("feet", 0.3048),
		linear("inches", 0.0254),
	}},
	{name: Weight, base: "kilograms", units: []unit{
		linear("kilograms", 1),
		linear("grams", 0.001),
		linear("pounds", 0.453592),
		linear("ounces", 0.0283495),
		linear("tons", 1000),
	}},
	{name: Temperature, base: "celsius", units: []unit{
		{name: "celsius", toBase: func(v float64) float64 { return v }, from: func(v float64) float64 { return v }},
		{name: "fahrenheit", toBase: func(v float64) float64 { return (v - 32) * 5 / 9 }, from: func(v float64) float64 { return v*9/5 + 32 }},
		{name: "kelvin", toBase: func(v float64) float64 { return v - 273.15 }, from: func(v float64) float64 { return v + 273.15 }},
	}},
	{name: Volume, base: "liters", units: []unit{
		linear("liters", 1),
		linear("milliliters", 0.001),
		linear("gallons", 3.78541),
		linear("cups", 0.236588),
	}},
	{name: Area, base: "square_meters", units: []unit{
		linear("square_meters", 1),
		linear("square_kilometers", 1e6),
		linear("square_feet", 0.092903),
		linear("acres", 4046.86),
	}},
	{name: Speed, base: "meters_per_second", units: []unit{
		linear("meters_per_second", 1),
		{name: "kilometers_per_hour", toBase: func(v float64) float64 { return v / 3.6 }, from: func(v float64) float64 { return v * 3.6 }},
		linear("miles_per_hour", 0.44704),
	}},
}

const absoluteZeroCelsius = -273.15

// Categories lists the category names in display order.
func Categories() []Category {
	names := make([]Category, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// Units lists the unit names of a category in display order.
func Units(name Category) ([]string, error) {
	c, err := lookupCategory(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(c.units))
	for i, u := range c.units {
		names[i] = u.name
	}
	return names, nil
}

// Convert converts value from one unit to another within a category.
func Convert(name Category, from, to string, value float64) (float64, error) {
	c, err := lookupCategory(name)
	if err != nil {
		return 0, err
	}
	src, err := c.lookup(from)
	if err != nil {
		return 0, err
	}
	dst, err := c.lookup(to)
	if err != nil {
		return 0, err
	}

	base := src.toBase(value)
	if c.name == Temperature && base < absoluteZeroCelsius {
		return 0, fmt.Errorf("%w: %g %s", ErrBelowAbsoluteZero, value, from)
	}
	return dst.from(base), nil
}

func lookupCategory(name Category) (*category, error) {
	for i := range categories {
		if categories[i].name == name {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

func (c *category) lookup(name string) (unit, error) {
	for _, u := range c.units {
		if u.name == name {
			return u, nil
		}
	}
	return unit{}, fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, name, c.name)
}
