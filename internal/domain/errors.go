package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a request failure.
type ErrorCode string

const (
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInput      ErrorCode = "INVALID_INPUT"
	ErrExtraction ErrorCode = "EXTRACTION_FAILED"
	ErrGeneration ErrorCode = "GENERATION_FAILED"
	ErrTimeout    ErrorCode = "REQUEST_TIMEOUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
)

// AppError is the single error type surfaced by the pipeline and stores.
// The message is what clients see; Cause is the wrapped underlying error.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// CodeOf returns the error code carried by err, or ErrInternal for errors
// from outside the taxonomy.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func NewError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NewInputError rejects a request before any extraction work happens
// (missing file, wrong MIME type, oversized upload).
func NewInputError(message string) *AppError {
	return NewError(ErrInput, message, nil)
}

// NewExtractionError covers unreadable PDFs and text-length bounds.
func NewExtractionError(message string, cause error) *AppError {
	return NewError(ErrExtraction, message, cause)
}

// NewGenerationError covers provider failures and schema violations. Fatal
// for the whole request; the pipeline never retries or repairs.
func NewGenerationError(message string, cause error) *AppError {
	return NewError(ErrGeneration, message, cause)
}

// NewTimeoutError marks an end-to-end deadline hit; in-flight work is
// abandoned and no result is returned.
func NewTimeoutError(cause error) *AppError {
	return NewError(ErrTimeout, "request timed out before the quiz was generated", cause)
}

func NewNotFoundError(message string) *AppError {
	return NewError(ErrNotFound, message, nil)
}
