package store

import (
	"context"
	"database/sql"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// EnrollmentStore defines the interface for enrollment aggregate
// persistence. Submissions travel with their enrollment; they are upserted
// and never deleted.
type EnrollmentStore interface {
	// Save persists the enrollment and its submissions as an idempotent
	// upsert keyed by the enrollment ID.
	// Returns ErrEnrollmentExists if another enrollment already pairs the
	// student with the course.
	Save(ctx context.Context, enrollment *domain.Enrollment) error

	// GetByID retrieves an enrollment with its submissions.
	// Returns ErrEnrollmentNotFound if the enrollment does not exist.
	GetByID(ctx context.Context, id domain.EnrollmentID) (*domain.Enrollment, error)

	// GetByStudentAndCourse retrieves the enrollment pairing a student with
	// a course. Returns ErrEnrollmentNotFound if none exists.
	GetByStudentAndCourse(ctx context.Context, studentID domain.UserID, courseID domain.CourseID) (*domain.Enrollment, error)

	// ListByStudent returns all enrollments of a student, submissions
	// included, newest first.
	ListByStudent(ctx context.Context, studentID domain.UserID) ([]*domain.Enrollment, error)

	// ListByCourse returns all enrollments in a course, submissions
	// included, newest first.
	ListByCourse(ctx context.Context, courseID domain.CourseID) ([]*domain.Enrollment, error)

	// WithTx returns an EnrollmentStore that runs its operations on the
	// provided transaction.
	WithTx(tx *sql.Tx) EnrollmentStore
}
