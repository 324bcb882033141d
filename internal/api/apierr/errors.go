package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes. Identity provider failures use the upper cased kind,
// e.g. WRONG_CREDENTIAL.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNoProfile       = "NO_PROFILE"
	CodeProfileNotFound = "PROFILE_NOT_FOUND"
	CodeInvalidLevel    = "INVALID_LEVEL"
	CodeInternalError   = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

var authStatus = map[auth.Kind]int{
	auth.KindAlreadyExists:       http.StatusConflict,
	auth.KindWrongCredential:     http.StatusUnauthorized,
	auth.KindNotFound:            http.StatusNotFound,
	auth.KindWeakCredential:      http.StatusBadRequest,
	auth.KindPopupDismissed:      http.StatusBadRequest,
	auth.KindPopupBlocked:        http.StatusBadRequest,
	auth.KindProviderNotEnabled:  http.StatusServiceUnavailable,
	auth.KindDomainNotAuthorized: http.StatusForbidden,
	auth.KindUnknown:             http.StatusBadRequest,
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		status, ok := authStatus[authErr.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		return &httpError{status, APIError{strings.ToUpper(string(authErr.Kind)), auth.Message(authErr)}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, model.ErrNoProfile):
		return &httpError{http.StatusConflict, APIError{CodeNoProfile, "No profile is loaded for this session"}}
	case errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProfileNotFound, "Profile not found"}}
	case errors.Is(err, model.ErrInvalidLevel):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLevel, "Level must be at least 1"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
