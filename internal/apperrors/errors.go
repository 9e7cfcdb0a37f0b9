package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a user or article does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("conflict")
	// ErrPermissionDenied is returned when the caller may not mutate a resource.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation is returned when input is rejected before reaching storage.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned for bad credentials or disabled accounts.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// HTTPError pairs a status code with the response body.
type HTTPError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *HTTPError) Error() string {
	return e.Response.Message
}

// MapErrorToHTTP maps a domain error to an HTTP error. Unknown errors become an
// opaque 500 so storage details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return newHTTPError(http.StatusNotFound, "Resource not found", "NOT_FOUND", err)
	case errors.Is(err, ErrConflict):
		return newHTTPError(http.StatusConflict, "Resource already exists", "CONFLICT", err)
	case errors.Is(err, ErrPermissionDenied):
		return newHTTPError(http.StatusForbidden, "Permission denied", "PERMISSION_DENIED", err)
	case errors.Is(err, ErrValidation):
		return newHTTPError(http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED", err)
	case errors.Is(err, ErrUnauthorized):
		return newHTTPError(http.StatusUnauthorized, "Authentication failed", "UNAUTHORIZED", err)
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Response: ErrorResponse{
				Message: "Internal server error",
				Code:    "INTERNAL_ERROR",
			},
		}
	}
}

func newHTTPError(status int, message, code string, err error) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Response: ErrorResponse{
			Message: message,
			Error:   err.Error(),
			Code:    code,
		},
	}
}
