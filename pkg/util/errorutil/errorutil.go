package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error kinds rendered in the "error" field of failure responses.
const (
	CodeNotFound              = "NotFound"
	CodeBadRequest            = "BadRequest"
	CodeConflict              = "Conflict"
	CodeMethodNotAllowed      = "MethodNotAllowed"
	CodeDependencyUnavailable = "DependencyUnavailable"
	CodeInternal              = "InternalError"
)

// MsgValidationError is the message of every request-shape failure.
const MsgValidationError = "validation error"

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewDependencyUnavailable(message string, details map[string]any) error {
	return NewDomainError(CodeDependencyUnavailable, message, http.StatusServiceUnavailable, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch {
	case err.Code == http.StatusNotFound:
		return NewDomainError(CodeNotFound, "route not found", err.Code, nil)
	case err.Code == http.StatusMethodNotAllowed:
		return NewDomainError(CodeMethodNotAllowed, "method not allowed", err.Code, nil)
	case err.Code >= 400 && err.Code < 500:
		return NewDomainError(CodeBadRequest, err.Message, http.StatusBadRequest, nil)
	default:
		return &DomainError{
			Code:       CodeInternal,
			Message:    "internal server error",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}
}
