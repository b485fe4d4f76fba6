package engine

import (
	"errors"
	"fmt"
)

// QueryError represents an error detected while executing a query.
//
// Query errors include:
//   - Pattern failure: The WHERE pattern could not be evaluated
//   - Row limit: The execution produced more rows than allowed
//   - Invalid query: The query is missing a WHERE pattern
//
// Filter errors are never QueryErrors: they exclude the row instead.
type QueryError struct {
	// Code identifies the error category.
	Code QueryErrorCode

	// Message is a human-readable description.
	Message string

	// Token identifies the affected execution.
	Token string

	// Err is the underlying cause, if any.
	Err error
}

// QueryErrorCode categorizes query errors.
type QueryErrorCode string

const (
	// ErrCodePatternFailed indicates the WHERE pattern could not be evaluated.
	ErrCodePatternFailed QueryErrorCode = "PATTERN_FAILED"

	// ErrCodeRowLimitExceeded indicates the execution exceeded max rows.
	ErrCodeRowLimitExceeded QueryErrorCode = "ROW_LIMIT_EXCEEDED"

	// ErrCodeInvalidQuery indicates a malformed query.
	ErrCodeInvalidQuery QueryErrorCode = "INVALID_QUERY"
)

// Error implements the error interface.
func (e *QueryError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Token != "" {
		msg = fmt.Sprintf("%s: %s (exec=%s)", e.Code, e.Message, e.Token)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsPatternError returns true if the WHERE pattern failed.
// Uses errors.As to handle wrapped errors.
func IsPatternError(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Code == ErrCodePatternFailed
	}
	return false
}

// IsRowLimitError returns true if the error is a row limit error.
// Matches both QueryError with ErrCodeRowLimitExceeded and RowsExceededError.
func IsRowLimitError(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) && qe.Code == ErrCodeRowLimitExceeded {
		return true
	}
	var re *RowsExceededError
	return errors.As(err, &re)
}

// newPatternError creates a QueryError for a failed WHERE pattern.
func newPatternError(token string, err error) *QueryError {
	return &QueryError{
		Code:    ErrCodePatternFailed,
		Message: "where pattern evaluation failed",
		Token:   token,
		Err:     err,
	}
}

// newRowLimitError creates a QueryError for an exceeded row quota.
func newRowLimitError(token string, err error) *QueryError {
	return &QueryError{
		Code:    ErrCodeRowLimitExceeded,
		Message: "execution exceeded max rows",
		Token:   token,
		Err:     err,
	}
}
