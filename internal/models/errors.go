// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to API clients. Domain-policy rejections are terminal;
// STORE_UNAVAILABLE and CONCURRENT_CONFLICT are retryable by the caller.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidOption      = "INVALID_OPTION"
	CodeInvalidParent      = "INVALID_PARENT"
	CodeDiscussionLocked   = "DISCUSSION_LOCKED"
	CodeSelfLike           = "SELF_LIKE"
	CodeSelfRequest        = "SELF_REQUEST"
	CodeAlreadyLiked       = "ALREADY_LIKED"
	CodeAlreadyConnected   = "ALREADY_CONNECTED"
	CodeDuplicateRequest   = "DUPLICATE_REQUEST"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeConcurrentConflict = "CONCURRENT_CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
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

// Retryable reports whether retrying the same operation may succeed.
func (e *AppError) Retryable() bool {
	return e.Code == CodeStoreUnavailable || e.Code == CodeConcurrentConflict
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInvalidOptionError(color string) *AppError {
	return &AppError{
		Code:    CodeInvalidOption,
		Message: fmt.Sprintf("%q is not one of the post's two sides", color),
	}
}

func NewInvalidParentError(parentID uint) *AppError {
	return &AppError{
		Code:    CodeInvalidParent,
		Message: fmt.Sprintf("parent comment %d does not belong to this post", parentID),
	}
}

func NewDiscussionLockedError(postID uint) *AppError {
	return &AppError{
		Code:    CodeDiscussionLocked,
		Message: fmt.Sprintf("discussion on post %d has ended", postID),
	}
}

func NewSelfLikeError() *AppError {
	return &AppError{
		Code:    CodeSelfLike,
		Message: "You cannot like your own comment",
	}
}

func NewSelfRequestError() *AppError {
	return &AppError{
		Code:    CodeSelfRequest,
		Message: "You cannot send a connection request to yourself",
	}
}

func NewAlreadyLikedError() *AppError {
	return &AppError{
		Code:    CodeAlreadyLiked,
		Message: "You have already liked this comment",
	}
}

func NewAlreadyConnectedError() *AppError {
	return &AppError{
		Code:    CodeAlreadyConnected,
		Message: "You are already connected with this user",
	}
}

func NewDuplicateRequestError() *AppError {
	return &AppError{
		Code:    CodeDuplicateRequest,
		Message: "Connection request already sent",
	}
}

func NewStoreUnavailableError(err error) *AppError {
	return &AppError{
		Code:    CodeStoreUnavailable,
		Message: "Record store temporarily unavailable",
		Err:     err,
	}
}

func NewConcurrentConflictError(err error) *AppError {
	return &AppError{
		Code:    CodeConcurrentConflict,
		Message: "Conflicting concurrent update, please retry",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
