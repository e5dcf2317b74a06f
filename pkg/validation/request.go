package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	cerrors "cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidField is wrapped by every field level validation failure.
var ErrInvalidField = errors.New("invalid field")

// Validator checks request structs against their validate tags and reports
// every failing field at once.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that names fields by their JSON keys.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. Field failures are collected into a single
// cloudeng.io/errors.M so callers see all of them.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	errs := &cerrors.M{}
	for _, fe := range fieldErrors {
		errs.Append(fmt.Errorf("%w: %s", ErrInvalidField, describe(fe)))
	}
	return errs.Err()
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
