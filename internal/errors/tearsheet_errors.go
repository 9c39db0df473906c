package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies the failure modes of tearsheet generation
type ErrorCategory string

const (
	// Input data problems
	ErrorCategoryMissingData   ErrorCategory = "MISSING_DATA"   // required field absent in source
	ErrorCategoryMalformedData ErrorCategory = "MALFORMED_DATA" // unparsable or inconsistent source data

	// Computation preconditions
	ErrorCategoryInsufficientData ErrorCategory = "INSUFFICIENT_DATA" // fewer data points than required
	ErrorCategoryInvalidWindow    ErrorCategory = "INVALID_WINDOW"    // rolling window size out of range
	ErrorCategoryNoOverlap        ErrorCategory = "NO_OVERLAP"        // benchmark/strategy domains disjoint

	// Configuration problems surfaced by the CLI layer
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
)

// TearsheetError represents a categorized error with context
type TearsheetError struct {
	Category   ErrorCategory
	Component  string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *TearsheetError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *TearsheetError) Unwrap() error {
	return e.Underlying
}

// New creates a new categorized tearsheet error
func New(category ErrorCategory, component, format string, args ...interface{}) *TearsheetError {
	return &TearsheetError{
		Category:  category,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with tearsheet error context
func Wrap(err error, category ErrorCategory, component, message string) *TearsheetError {
	if err == nil {
		return nil
	}
	return &TearsheetError{
		Category:   category,
		Component:  component,
		Message:    message,
		Underlying: err,
	}
}

// CategoryOf returns the category of err, or "" when err carries none
func CategoryOf(err error) ErrorCategory {
	var te *TearsheetError
	if stderrors.As(err, &te) {
		return te.Category
	}
	return ""
}

// Is reports whether err belongs to the given category
func Is(err error, category ErrorCategory) bool {
	return CategoryOf(err) == category
}

// Common error constructors

func NewMissingDataError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryMissingData, component, format, args...)
}

func NewMalformedDataError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryMalformedData, component, format, args...)
}

func NewInsufficientDataError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryInsufficientData, component, format, args...)
}

func NewInvalidWindowError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryInvalidWindow, component, format, args...)
}

func NewNoOverlapError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryNoOverlap, component, format, args...)
}

func NewConfigurationError(component, format string, args ...interface{}) *TearsheetError {
	return New(ErrorCategoryConfiguration, component, format, args...)
}
