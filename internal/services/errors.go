package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/onlinecourse-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Course specific errors
	ErrCourseNotFound = errors.New("course not found")

	// Enrollment specific errors
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// Submission specific errors
	ErrSubmissionNotFound = errors.New("submission not found")

	// User/Session errors
	ErrUserAlreadyExists  = errors.New("User already exists.")
	ErrInvalidCredentials = errors.New("Invalid username or password.")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrInvalidSession     = errors.New("invalid session token")

	// Import errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrSessionRevoked) ||
		errors.Is(err, ErrInvalidSession)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrUnsupportedFormat) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrUserAlreadyExists)
}
