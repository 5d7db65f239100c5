package api

import (
	"errors"
	"net/http"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
	"github.com/ExaltAI/lms-demo/internal/service/auth"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors (role and ownership)
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrAlreadyIssued):
		return http.StatusConflict

	// State-machine and cross-aggregate rule violations
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, service.ErrCourseUnavailable),
		errors.Is(err, service.ErrAssignmentNotInCourse),
		errors.Is(err, service.ErrRequirementsNotMet),
		errors.Is(err, service.ErrSubmissionMissing):
		return http.StatusUnprocessableEntity

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, service.ErrUnauthorized):
		return "You are not allowed to perform this operation"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"
	case errors.Is(err, store.ErrEnrollmentNotFound):
		return "Enrollment not found"
	case errors.Is(err, store.ErrCertificateNotFound):
		return "Certificate not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, store.ErrEnrollmentExists):
		return "Already enrolled in this course"
	case errors.Is(err, service.ErrAlreadyIssued),
		errors.Is(err, store.ErrCertificateExists):
		return "Certificate already issued"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Cross-aggregate rule violations
	case errors.Is(err, service.ErrCourseUnavailable):
		return "Course is not available for enrollment"
	case errors.Is(err, service.ErrAssignmentNotInCourse):
		return "Assignment does not belong to the enrolled course"
	case errors.Is(err, service.ErrRequirementsNotMet):
		return "Course completion requirements not met"
	case errors.Is(err, service.ErrSubmissionMissing):
		return "No submission found for this assignment"

	// Domain rule violations carry crafted messages without internals, so
	// they are safe to surface.
	case errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the response, logging the underlying error. An empty userMessage selects
// the safe message derived from the error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
