package auth

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		// Report fields by their lowercase name, matching request field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.ToLower(fld.Name)
		})
	})
	return validate
}

// validateStruct runs the `validate` tags on s and reports the first failing
// field as a *ValidationError.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("request", "validation failed")
	}

	fe := fieldErrs[0]
	return invalid(fe.Field(), formatFieldError(fe))
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "required_if":
		return fe.Field() + " is required for students"
	case "email":
		return "invalid email format"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
