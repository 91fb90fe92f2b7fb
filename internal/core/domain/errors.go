package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Calculation Errors.

	// ErrInvalidAudienceFormat indicates the target audience text has no parseable age range.
	ErrInvalidAudienceFormat = errors.New("invalid audience format")

	// ErrEmptyPlan indicates no channel has a positive reach.
	ErrEmptyPlan = errors.New("empty media plan")

	// ErrNoReferenceData indicates the reference table has no usable rows.
	ErrNoReferenceData = errors.New("no reference data")

	// ErrDataFormat indicates the reference table is missing its header row.
	ErrDataFormat = errors.New("reference data format error")

	// ErrUnknownChannel indicates a plan item names a channel outside the category set.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrDuplicateChannel indicates a channel appears more than once in a plan.
	ErrDuplicateChannel = errors.New("duplicate channel")
)

// ErrorCode tags a calculation failure for callers that switch on kind.
type ErrorCode string

// Calculation error codes.
const (
	CodeInvalidAudienceFormat ErrorCode = "invalid_audience_format"
	CodeEmptyPlan             ErrorCode = "empty_plan"
	CodeNoReferenceData       ErrorCode = "no_reference_data"
	CodeDataFormat            ErrorCode = "data_format"
	CodeInvalidPlan           ErrorCode = "invalid_plan"
)

// CalcError is the failure variant of a calculation.
// It carries a stable code, a human-readable message and the sentinel it wraps.
type CalcError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CalcError) Error() string {
	return e.Message
}

// Unwrap returns the wrapped sentinel so errors.Is works.
func (e *CalcError) Unwrap() error {
	return e.Err
}

// NewCalcError builds a CalcError with a formatted message.
func NewCalcError(code ErrorCode, sentinel error, format string, args ...any) *CalcError {
	return &CalcError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

// CodeOf returns the error code of err, or an empty code if err is not a CalcError.
func CodeOf(err error) ErrorCode {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Code
	}
	return ""
}
