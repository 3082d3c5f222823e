package http

import (
	"errors"
	"reflect"
	"strings"

	"shiptrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	return &RequestValidator{validate: validate}
}

// Validate reports the first invalid field as a ValueIsInvalidError named after its
// JSON key.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		if first.Tag() == "required" {
			return errs.NewValueIsRequiredError(first.Field())
		}
		return errs.NewValueIsInvalidErrorWithCause(first.Field(), errors.New("failed on "+first.Tag()))
	}

	return errs.NewValueIsInvalidErrorWithCause("body", err)
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
