// ABOUTME: Input forms for creating customers, contacts and deals
// ABOUTME: Validates with go-playground/validator and builds model records
package forms

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/harperreed/pipeline/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names so errors match what callers submitted.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// Register only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// check validates a form and converts failures to models.ValidationErrors.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(models.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		value := ""
		if fe.Tag() != "required" {
			value = fmt.Sprint(fe.Value())
		}
		out = append(out, &models.ValidationError{
			Field:  fe.Field(),
			Value:  value,
			Reason: reason(fe),
		})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "finite":
		return "must be a finite number"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "datetime":
		return "must be a date like 2024-01-31"
	default:
		return "failed " + fe.Tag()
	}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
