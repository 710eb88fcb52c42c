// Package models contains the domain models and error types for the application.
package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used to classify failures across layers.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeBadRequest   = "BAD_REQUEST"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodeImage        = "IMAGE_PROCESSING_ERROR"
)

// DefaultPublicMessage is returned when an error carries no public message of its own.
const DefaultPublicMessage = "Something went wrong, try again later"

// AppError carries an HTTP status and a public-safe message alongside the
// internal error detail. The internal detail is logged, never returned to callers.
type AppError struct {
	Code          string
	StatusCode    int
	PublicMessage string
	Err           error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.PublicMessage, e.Err)
	}
	return e.PublicMessage
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewUnauthorizedError builds a 401 error for bad or missing credentials and tokens.
func NewUnauthorizedError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeUnauthorized,
		StatusCode:    fiber.StatusUnauthorized,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// NewBadRequestError builds a 400 error for malformed input or ownership violations.
func NewBadRequestError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeBadRequest,
		StatusCode:    fiber.StatusBadRequest,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// NewConflictError builds a 409 error for duplicate resources.
func NewConflictError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeConflict,
		StatusCode:    fiber.StatusConflict,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// NewNotFoundError builds a 404 error for missing resources.
func NewNotFoundError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeNotFound,
		StatusCode:    fiber.StatusNotFound,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// NewInternalError builds a 500 error for store and infrastructure failures.
func NewInternalError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeInternal,
		StatusCode:    fiber.StatusInternalServerError,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// NewValidationError builds a 400 error for schema mismatches. The terminal
// error handler rewrites its public message to "Wrong data".
func NewValidationError(err error) *AppError {
	return &AppError{
		Code:          CodeValidation,
		StatusCode:    fiber.StatusBadRequest,
		PublicMessage: "Wrong data",
		Err:           err,
	}
}

// NewImageProcessingError builds a 500 error for codec failures in the picture pipeline.
func NewImageProcessingError(err error, publicMessage string) *AppError {
	return &AppError{
		Code:          CodeImage,
		StatusCode:    fiber.StatusInternalServerError,
		PublicMessage: publicMessage,
		Err:           err,
	}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
