package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports an invalid configuration value. Field is the config
// key (e.g. "validation_level"), not the Go field name.
type ValidationError struct {
	FilePath string
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// validate reports struct fields by their koanf key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfigValues checks cfg against its struct tags and the rules tags
// cannot express. filePath names the source in the error.
func ValidateConfigValues(cfg *Config, filePath string) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return &ValidationError{
				FilePath: filePath,
				Field:    first.Field(),
				Message:  describe(first),
			}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if cfg.Timeout < 0 {
		return &ValidationError{FilePath: filePath, Field: "timeout", Message: "must not be negative"}
	}
	return nil
}

// describe turns a failed tag into a sentence fragment.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		allowed := strings.Join(strings.Fields(fe.Param()), ", ")
		return fmt.Sprintf("must be one of: %s (got %q)", allowed, fmt.Sprint(fe.Value()))
	default:
		return "failed validation: " + fe.Tag()
	}
}
