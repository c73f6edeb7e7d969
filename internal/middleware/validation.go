package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError represents a rejected request parameter
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// paramError marks a query value that could not be parsed
type paramError struct {
	field string
	kind  string
}

func (e *paramError) Error() string {
	return e.field + " must be " + e.kind
}

// QueryInt64 reads an optional integer query parameter
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &paramError{field: name, kind: "an integer"}
	}
	return &v, nil
}

// QueryBool reads an optional boolean query parameter, false when absent
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{field: name, kind: "a boolean"}
	}
	return v, nil
}

// ValidateRequest validates a decoded query struct against its tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// FormatValidationErrors converts parse and validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errs []ValidationError

	var pe *paramError
	if errors.As(err, &pe) {
		return append(errs, ValidationError{Field: pe.field, Message: "Value must be " + pe.kind})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errs
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "ne":
		return "Value must not be " + e.Param()
	default:
		return "Invalid value"
	}
}
