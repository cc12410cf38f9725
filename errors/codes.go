package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Element lookup errors
const (
	// ErrCodeNoSuchElement indicates an empty or unmatched sequence.
	ErrCodeNoSuchElement ErrorCode = "NO_SUCH_ELEMENT"
	// ErrCodeTooManyElements indicates more than one element matched.
	ErrCodeTooManyElements ErrorCode = "TOO_MANY_ELEMENTS"
	// ErrCodeOutOfRange indicates an index beyond the sequence bounds.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Conversion errors
const (
	// ErrCodeTypeMismatch indicates an element of an unexpected dynamic type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeConversionFailed indicates a caller-supplied conversion failed.
	ErrCodeConversionFailed ErrorCode = "CONVERSION_FAILED"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates data could not be decoded.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// ErrCodeInternal indicates an unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var callerCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:     true,
	ErrCodeMissingField:     true,
	ErrCodeInvalidFormat:    true,
	ErrCodeConversionFailed: true,
	ErrCodeTypeMismatch:     true,
}

// IsCallerCode reports whether the code describes bad caller input rather
// than a property of the queried sequence.
func IsCallerCode(code ErrorCode) bool {
	return callerCodes[code]
}
