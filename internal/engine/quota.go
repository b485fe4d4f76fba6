package engine

import (
	"errors"
	"fmt"
)

// RowQuota counts the input rows one execution drives through its filter
// and enforces a maximum.
//
// Each execution has its own RowQuota. The quota is checked before every
// row is filtered, which bounds the work a query over a large dataset can
// do regardless of how selective its filter is.
type RowQuota struct {
	maxRows int // Maximum allowed rows for this execution (0 = unlimited)
	current int // Rows checked so far
}

// NewRowQuota creates a quota with the given limit. A limit of 0 or less
// disables the check.
func NewRowQuota(maxRows int) *RowQuota {
	return &RowQuota{maxRows: maxRows}
}

// Check increments the row counter and validates it against the limit.
//
// Returns RowsExceededError if the quota is exceeded.
func (q *RowQuota) Check(token string) error {
	q.current++
	if q.maxRows > 0 && q.current > q.maxRows {
		return &RowsExceededError{
			Token: token,
			Rows:  q.current,
			Limit: q.maxRows,
		}
	}
	return nil
}

// Current returns the current row count.
func (q *RowQuota) Current() int {
	return q.current
}

// MaxRows returns the limit.
func (q *RowQuota) MaxRows() int {
	return q.maxRows
}

// RowsExceededError is returned when an execution exceeds its row quota.
type RowsExceededError struct {
	Token string // The execution that exceeded the quota
	Rows  int    // Number of rows reached
	Limit int    // Maximum allowed rows
}

// Error implements the error interface.
func (e *RowsExceededError) Error() string {
	return fmt.Sprintf("execution %s exceeded max rows quota: %d rows > %d limit",
		e.Token, e.Rows, e.Limit)
}

// IsRowsExceededError returns true if the error is a RowsExceededError.
// Uses errors.As to handle wrapped errors.
func IsRowsExceededError(err error) bool {
	var re *RowsExceededError
	return errors.As(err, &re)
}
