package practice

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound covers unknown users, modules and item indices.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a malformed request before any scoring happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// newValidator reports fields by their json names, as clients send them.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// fromValidator turns the first failed struct tag into a ValidationError.
func fromValidator(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := errs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return invalid(field, "is required")
	case "min", "gte":
		return invalid(field, "must be at least %s", fe.Param())
	case "max", "lte":
		return invalid(field, "must be at most %s", fe.Param())
	default:
		return invalid(field, "failed %s validation", fe.Tag())
	}
}
