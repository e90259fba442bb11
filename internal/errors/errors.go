package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/oops"
)

var (
	// ErrValidationConflict is returned when an email or username is already registered.
	ErrValidationConflict = errors.New("email or username already in use")
	// ErrInvalidCredentials is returned when a login does not match a stored user.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden is returned when a caller mutates a post it does not own.
	ErrForbidden = errors.New("not authorized")
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// CodeStoreFailure tags wrapped database errors.
const CodeStoreFailure = "STORE_FAILURE"

// StoreFailure wraps a database error with the STORE_FAILURE code and key/value context.
// Returns nil when err is nil.
func StoreFailure(err error, kv ...any) error {
	if err == nil {
		return nil
	}
	return oops.Code(CodeStoreFailure).With(kv...).Wrap(err)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Mapper maps domain errors to HTTP errors.
type Mapper struct {
	// HideMissingPosts reports a missing post as forbidden so ids of other users' posts
	// cannot be probed.
	HideMissingPosts bool
}

// Map converts err into the HTTP error shown to the client. Unknown errors become a
// generic 500 so driver details never reach the response.
func (m Mapper) Map(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidationConflict):
		return NewHTTPError(http.StatusBadRequest, "Email or Username already in use", "VALIDATION_CONFLICT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, "Invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, "Invalid input", "INVALID_INPUT")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Not authorized", "FORBIDDEN")
	case errors.Is(err, ErrPostNotFound):
		if m.HideMissingPosts {
			return NewHTTPError(http.StatusForbidden, "Not authorized", "FORBIDDEN")
		}
		return NewHTTPError(http.StatusNotFound, "Post not found", "POST_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// LogError logs an error with structured context if it's an oops error.
func LogError(logger *slog.Logger, msg string, err error, attrs ...any) {
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "error", oopsErr.Error())
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
		return
	}
	logger.Error(msg, append(attrs, "error", err)...)
}
