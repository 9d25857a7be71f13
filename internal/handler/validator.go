package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/domain"
)

// RequestValidator is installed as echo's Validator. Failures come back as
// *apperrors.ValidationError keyed by JSON field name.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator registers the choice=<kind> rule backed by cat.
func NewRequestValidator(cat *catalog.Catalog) *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		return cat.Has(catalog.Kind(fl.Param()), fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		if r := sl.Current().Interface().(domain.TrainingRecord); r.Date.IsZero() {
			sl.ReportError(r.Date, "date", "Date", "required", "")
		}
	}, domain.TrainingRecord{})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "choice":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	}
	return fmt.Sprintf("failed on the %s rule", fe.Tag())
}
