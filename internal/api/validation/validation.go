// Package validation mirrors the form constraints of the dashboard: required
// fields, minimum amounts and enum membership.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func required(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldError{Field: field, Message: field + " is required"})
	}
	return errs
}

func nonNegative(errs []FieldError, field string, d decimal.Decimal) []FieldError {
	if d.IsNegative() {
		errs = append(errs, FieldError{Field: field, Message: field + " must not be negative"})
	}
	return errs
}

func positive(errs []FieldError, field string, d decimal.Decimal) []FieldError {
	if !d.IsPositive() {
		errs = append(errs, FieldError{Field: field, Message: field + " must be greater than 0"})
	}
	return errs
}

func oneOf(errs []FieldError, field, value string, allowed ...string) []FieldError {
	if !slices.Contains(allowed, value) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))})
	}
	return errs
}

func between(errs []FieldError, field string, n, lo, hi int) []FieldError {
	if n < lo || n > hi {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be between %d and %d", field, lo, hi)})
	}
	return errs
}
