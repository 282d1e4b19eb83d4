package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tartampluch/go-gymtrack/internal/config"
)

// APIError is a failure the API reports to clients as {code, message}.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrInvalid(msg string) error {
	return &APIError{Code: config.CodeInvalidArgument, Message: msg}
}

func ErrUnauthenticated(msg string) error {
	return &APIError{Code: config.CodeUnauthenticated, Message: msg}
}

func ErrForbidden(msg string) error {
	return &APIError{Code: config.CodeForbidden, Message: msg}
}

func ErrNotFound(msg string) error {
	return &APIError{Code: config.CodeNotFound, Message: msg}
}

func ErrConflict(msg string) error {
	return &APIError{Code: config.CodeConflict, Message: msg}
}

// ToHTTPStatus maps an error to its response status. Anything that is not an
// *APIError is an internal failure.
func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case config.CodeInvalidArgument:
			return http.StatusBadRequest
		case config.CodeUnauthenticated:
			return http.StatusUnauthorized
		case config.CodeForbidden:
			return http.StatusForbidden
		case config.CodeNotFound:
			return http.StatusNotFound
		case config.CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func errorBody(code, msg string) APIError {
	return APIError{Code: code, Message: msg}
}

// errorFromErr hides internal error details from clients.
func errorFromErr(err error) APIError {
	var api *APIError
	if errors.As(err, &api) {
		return *api
	}
	return errorBody(config.CodeInternal, config.ErrInternal)
}
