package expr

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes evaluation errors.
type ErrorCode string

const (
	// ErrCodeTypeError indicates an operand of the wrong shape, or a node whose
	// value has no boolean coercion (digests).
	ErrCodeTypeError ErrorCode = "TYPE_ERROR"

	// ErrCodeEffectiveBooleanValue indicates a term whose type admits no
	// effective boolean value (IRIs, blank nodes, date-time literals...).
	// It is a kind of type error: IsTypeError reports true for it.
	ErrCodeEffectiveBooleanValue ErrorCode = "EBV_ERROR"

	// ErrCodeUnboundVariable indicates a variable with no value in the row.
	ErrCodeUnboundVariable ErrorCode = "UNBOUND_VARIABLE"

	// ErrCodeEvaluation indicates a failed sub-pattern evaluation (EXISTS).
	ErrCodeEvaluation ErrorCode = "EVALUATION_ERROR"

	// ErrCodeInvalidBinding indicates a binding id outside the installed input multiset.
	ErrCodeInvalidBinding ErrorCode = "INVALID_BINDING"
)

// Error is an expression evaluation error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Functor names the node that raised the error, when known.
	Functor string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Functor != "" {
		msg = fmt.Sprintf("%s: %s (in %s)", e.Code, e.Message, e.Functor)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode of err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsTypeError reports whether err is a type error, including effective
// boolean value failures.
func IsTypeError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeTypeError || code == ErrCodeEffectiveBooleanValue
}

// IsEffectiveBooleanValueError reports whether err is an EBV coercion failure.
func IsEffectiveBooleanValueError(err error) bool {
	return CodeOf(err) == ErrCodeEffectiveBooleanValue
}

// IsUnboundError reports whether err signals an unbound variable.
func IsUnboundError(err error) bool {
	return CodeOf(err) == ErrCodeUnboundVariable
}

// IsEvaluationError reports whether err is a sub-pattern evaluation failure.
func IsEvaluationError(err error) bool {
	return CodeOf(err) == ErrCodeEvaluation
}

// IsInvalidBindingError reports whether err signals a bad binding id.
func IsInvalidBindingError(err error) bool {
	return CodeOf(err) == ErrCodeInvalidBinding
}

func newTypeError(functor, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeTypeError,
		Message: fmt.Sprintf(format, args...),
		Functor: functor,
	}
}

func newEBVError(functor, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeEffectiveBooleanValue,
		Message: fmt.Sprintf(format, args...),
		Functor: functor,
	}
}

func newUnboundError(variable string) *Error {
	return &Error{
		Code:    ErrCodeUnboundVariable,
		Message: fmt.Sprintf("variable ?%s is unbound", variable),
	}
}

func newEvaluationError(functor, message string, err error) *Error {
	return &Error{
		Code:    ErrCodeEvaluation,
		Message: message,
		Functor: functor,
		Err:     err,
	}
}

func newInvalidBindingError(err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidBinding,
		Message: "binding id is not valid for the installed input multiset",
		Err:     err,
	}
}
