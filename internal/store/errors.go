package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested aggregate does not exist.
	// Entity-specific not-found errors wrap it; it is the explicit absence
	// marker finders return instead of a nil result.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// rule. Entity-specific duplicate errors wrap it.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when a save references another
	// aggregate that does not exist, such as a course naming an unknown
	// tutor.
	ErrInvalidReference = errors.New("referenced entity not found")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCourseNotFound indicates that the requested course does not exist.
	ErrCourseNotFound = fmt.Errorf("%w: course", ErrNotFound)

	// ErrEnrollmentNotFound indicates that the requested enrollment does not exist.
	ErrEnrollmentNotFound = fmt.Errorf("%w: enrollment", ErrNotFound)

	// ErrCertificateNotFound indicates that the requested certificate does not exist.
	ErrCertificateNotFound = fmt.Errorf("%w: certificate", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrEnrollmentExists indicates that the student is already enrolled in
	// the course.
	ErrEnrollmentExists = fmt.Errorf("%w: enrollment", ErrDuplicate)

	// ErrCertificateExists indicates that a certificate was already issued
	// for the enrollment.
	ErrCertificateExists = fmt.Errorf("%w: certificate", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
