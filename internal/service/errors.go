// Package service provides application-level services for managing users,
// courses, enrollments and certificates.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check for with
// errors.Is(). The API layer maps them to HTTP status codes.
var (
	// ErrUnauthorized is the base error for role and ownership violations.
	// Specific violations wrap it. API layer should map this to HTTP 403
	// Forbidden.
	ErrUnauthorized = errors.New("operation not permitted")

	// ErrNotStudent indicates the acting user does not hold the student role.
	ErrNotStudent = fmt.Errorf("%w: user is not a student", ErrUnauthorized)

	// ErrNotTutor indicates the acting user does not hold the tutor role.
	ErrNotTutor = fmt.Errorf("%w: user is not a tutor", ErrUnauthorized)

	// ErrNotCourseOwner indicates the acting tutor does not own the course.
	ErrNotCourseOwner = fmt.Errorf("%w: course is owned by another tutor", ErrUnauthorized)

	// ErrNotEnrollmentOwner indicates the enrollment belongs to another
	// student.
	ErrNotEnrollmentOwner = fmt.Errorf("%w: enrollment belongs to another student", ErrUnauthorized)

	// ErrInvalidCredentials indicates an authentication attempt with an
	// unknown email or wrong password. API layer should map this to HTTP
	// 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAlreadyEnrolled indicates the student already holds an enrollment
	// in the course. API layer should map this to HTTP 409 Conflict.
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")

	// ErrAlreadyIssued indicates a certificate was already issued for the
	// enrollment. API layer should map this to HTTP 409 Conflict.
	ErrAlreadyIssued = errors.New("certificate already issued for this enrollment")

	// ErrCourseUnavailable indicates the course is not open for enrollment,
	// either because it is not published or because it has already ended.
	ErrCourseUnavailable = errors.New("course is not available for enrollment")

	// ErrAssignmentNotInCourse indicates the assignment does not belong to
	// the course the enrollment covers.
	ErrAssignmentNotInCourse = errors.New("assignment does not belong to the enrolled course")

	// ErrRequirementsNotMet indicates that not every assignment in the
	// course has an evaluated submission, so no certificate can be issued.
	ErrRequirementsNotMet = errors.New("course completion requirements not met")

	// ErrSubmissionMissing indicates no submission exists for the
	// assignment being evaluated.
	ErrSubmissionMissing = errors.New("no submission found for assignment")
)
