package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

func NewTimeoutError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusRequestTimeout,
		Message: message,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

func NewNotFoundError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: "Resource not found",
		Detail:  detail,
	}
}

// Scoring pipeline specific errors
func NewLLMError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "LLM processing failed",
		Detail:  detail,
	}
}

func NewConfigurationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Message: "Service misconfigured",
		Detail:  detail,
	}
}

func NewPersistenceError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: "Persistence failed",
		Detail:  detail,
	}
}
