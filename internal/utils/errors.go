package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match with errors.Is against any *AppError.
var (
	ErrValidation = errors.New("validation error")
	ErrFilesystem = errors.New("filesystem error")
	ErrDecode     = errors.New("decode error")
	ErrUpstream   = errors.New("upstream error")
	ErrTooLarge   = errors.New("payload too large")
	ErrNotFound   = errors.New("not found")
)

type AppError struct {
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: ErrValidation, StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, StatusCode: http.StatusNotFound, Message: message}
}

func NewMethodNotAllowedError(message string) *AppError {
	return &AppError{Kind: ErrValidation, StatusCode: http.StatusMethodNotAllowed, Message: message}
}

func NewTooLargeError(message string) *AppError {
	return &AppError{Kind: ErrTooLarge, StatusCode: http.StatusRequestEntityTooLarge, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

func NewFilesystemError(message string, err error) *AppError {
	return &AppError{Kind: ErrFilesystem, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func NewDecodeError(message string, err error) *AppError {
	return &AppError{Kind: ErrDecode, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: ErrUpstream, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}
