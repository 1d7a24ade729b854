package jbindgen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// configError converts validator errors into ConfigErrors joined with
// errors.Join.
func configError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	errs := make([]error, 0, len(valErrs))
	for _, ve := range valErrs {
		errs = append(errs, &ConfigError{Field: fieldPath(ve), Message: formatValidationError(ve)})
	}
	return errors.Join(errs...)
}

// fieldPath drops the struct name from the validator namespace:
// "Config.packages[1]" becomes "packages[1]".
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ns
}

// overrideError converts gorilla/schema decode errors into ConfigErrors.
func overrideError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return err
	}
	keys := make([]string, 0, len(multi))
	for k := range multi {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	errs := make([]error, 0, len(keys))
	for _, k := range keys {
		msg := multi[k].Error()
		var unknown schema.UnknownKeyError
		var conv schema.ConversionError
		switch {
		case errors.As(multi[k], &unknown):
			msg = "unknown key"
		case errors.As(multi[k], &conv):
			msg = fmt.Sprintf("cannot use value as %s", conv.Type)
		}
		errs = append(errs, &ConfigError{Field: k, Message: msg})
	}
	return errors.Join(errs...)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "pkgexpr":
		return `must be a package expression ending in ".*" or ".**"`
	case "endswith":
		return fmt.Sprintf("must end with %q", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
