package errors

import (
	"errors"
	"net/http"
)

// BusinessError represents a caller or business-state violation with an
// associated HTTP status code. These errors are terminal: the caller has to
// change its input or the state of the world, retrying does not help.
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func NewValidation(message string) *BusinessError {
	return &BusinessError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *BusinessError {
	return &BusinessError{Code: http.StatusNotFound, Message: message}
}

func NewForbidden(message string) *BusinessError {
	return &BusinessError{Code: http.StatusForbidden, Message: message}
}

func NewConflict(message string) *BusinessError {
	return &BusinessError{Code: http.StatusConflict, Message: message}
}

func NewUnauthorized(message string) *BusinessError {
	return &BusinessError{Code: http.StatusUnauthorized, Message: message}
}

// StatusCode returns the HTTP status for err. Anything that is not a
// BusinessError is an unexpected failure and maps to 500.
func StatusCode(err error) int {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return http.StatusInternalServerError
}

func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

func IsValidation(err error) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == http.StatusBadRequest
	}
	return false
}
