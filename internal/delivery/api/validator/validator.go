// Package validator adapts go-playground/validator to echo and reports failures as domain validation errors.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "taskmanager/internal/domain/errors"
	"taskmanager/internal/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that names fields after their JSON keys.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &CustomValidator{validate: validate}
}

// Validate checks the struct tags of i. Tag violations become a *domainerrors.ValidationError.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.WithStack(err)
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		// Keep the first failure per field
		if _, exists := fields[fieldErr.Field()]; exists {
			continue
		}
		fields[fieldErr.Field()] = messageFor(fieldErr)
	}

	return domainerrors.NewValidationError(fields)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

func messageFor(fieldErr validator.FieldError) string {
	label := displayName(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, fieldErr.Param())
	default:
		return label + " is invalid"
	}
}

func displayName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}

	return string(unicode.ToUpper(r)) + field[size:]
}
