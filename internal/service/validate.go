package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"yatra-booking/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so clients can map errors to inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates req and converts failures into a ValidationError.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError("Invalid request", nil)
	}
	details := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domain.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return domain.NewValidationError(validationMessage(details), details)
}

func validationMessage(details []domain.FieldError) string {
	for _, d := range details {
		if d.Rule != "required" {
			return "Invalid request"
		}
	}
	return "Missing required fields"
}
