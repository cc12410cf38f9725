package errors

import (
	"fmt"
)

// QueryError is the unified error type returned by linqkit operations.
type QueryError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *QueryError) Unwrap() error { return e.Cause }

// Is matches any QueryError carrying the same code, so
// errors.Is(err, ErrNoSuchElement) works for every constructor below.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *QueryError) WithCause(cause error) *QueryError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *QueryError) WithDetails(details map[string]any) *QueryError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *QueryError) WithDetail(key string, value any) *QueryError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new QueryError.
func New(code ErrorCode, message string) *QueryError {
	return &QueryError{Code: code, Message: message}
}

// Sentinels for errors.Is. They are never returned directly; constructors
// return fresh values with details attached.
var (
	ErrNoSuchElement    = New(ErrCodeNoSuchElement, "sequence contains no matching element")
	ErrTooManyElements  = New(ErrCodeTooManyElements, "sequence contains more than one matching element")
	ErrOutOfRange       = New(ErrCodeOutOfRange, "index out of range")
	ErrTypeMismatch     = New(ErrCodeTypeMismatch, "element has unexpected type")
	ErrConversionFailed = New(ErrCodeConversionFailed, "element conversion failed")
	ErrInvalidInput     = New(ErrCodeInvalidInput, "invalid input")
	ErrInvalidFormat    = New(ErrCodeInvalidFormat, "invalid format")
)

// --- Constructors ---

// NoSuchElement creates a QueryError for an operator that found nothing.
func NoSuchElement(operator string) *QueryError {
	return &QueryError{
		Code: ErrCodeNoSuchElement, Message: fmt.Sprintf("%s: sequence contains no matching element", operator),
		Details: map[string]any{"operator": operator},
	}
}

// TooManyElements creates a QueryError for an operator that expected one match.
func TooManyElements(operator string) *QueryError {
	return &QueryError{
		Code: ErrCodeTooManyElements, Message: fmt.Sprintf("%s: sequence contains more than one matching element", operator),
		Details: map[string]any{"operator": operator},
	}
}

// OutOfRange creates a QueryError for an index past the end of the sequence.
func OutOfRange(operator string, index int) *QueryError {
	return &QueryError{
		Code: ErrCodeOutOfRange, Message: fmt.Sprintf("%s: index %d out of range", operator, index),
		Details: map[string]any{"operator": operator, "index": index},
	}
}

// TypeMismatch creates a QueryError for an element that is not of the wanted type.
func TypeMismatch(operator string, want string, got any) *QueryError {
	return &QueryError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("%s: expected %s, got %T", operator, want, got),
		Details: map[string]any{"operator": operator, "want": want, "got": fmt.Sprintf("%T", got)},
	}
}

// ConversionFailed wraps an error raised by a caller-supplied conversion.
func ConversionFailed(operator string, index int, cause error) *QueryError {
	return &QueryError{
		Code: ErrCodeConversionFailed, Message: fmt.Sprintf("%s: element %d could not be converted", operator, index),
		Details: map[string]any{"operator": operator, "index": index}, Cause: cause,
	}
}

// InvalidInput creates a QueryError for invalid input.
func InvalidInput(field, reason string) *QueryError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &QueryError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a QueryError for validation errors.
func Validation(message string) *QueryError {
	return &QueryError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a QueryError for a missing required field.
func MissingField(field string) *QueryError {
	return &QueryError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// InvalidFormat creates a QueryError for input that could not be decoded.
func InvalidFormat(source string, cause error) *QueryError {
	return &QueryError{
		Code: ErrCodeInvalidFormat, Message: fmt.Sprintf("Invalid format in %s", source),
		Details: map[string]any{"source": source}, Cause: cause,
	}
}

// Internal creates a QueryError for an unexpected failure.
func Internal(cause error) *QueryError {
	return &QueryError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}
