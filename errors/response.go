package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON structure printed by the linq tool on failure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts a QueryError to an ErrorResponse for JSON serialization.
func (e *QueryError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
		},
	}
}

// IsQueryError checks if an error is a QueryError.
func IsQueryError(err error) bool {
	var qErr *QueryError
	return stderrors.As(err, &qErr)
}

// AsQueryError converts an error to a QueryError if possible.
func AsQueryError(err error) (*QueryError, bool) {
	var qErr *QueryError
	if stderrors.As(err, &qErr) {
		return qErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first QueryError in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	if qErr, ok := AsQueryError(err); ok {
		return qErr.Code
	}
	return ErrCodeInternal
}

// Wrap returns err as a QueryError, wrapping foreign errors as internal.
func Wrap(err error) *QueryError {
	if err == nil {
		return nil
	}
	if qErr, ok := AsQueryError(err); ok {
		return qErr
	}
	return Internal(err)
}
