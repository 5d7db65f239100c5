package store

import (
	"context"
	"database/sql"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// CourseStore defines the interface for course aggregate persistence.
// A course is saved and loaded as one unit, topics, assignments and
// resources included.
type CourseStore interface {
	// Save persists the whole aggregate as an idempotent upsert keyed by
	// the course ID. Nested entities no longer present in the aggregate are
	// removed from storage.
	Save(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course with all of its nested entities.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id domain.CourseID) (*domain.Course, error)

	// ListPublished returns all published courses without their nested
	// entities loaded, newest first. A course list view never needs topic
	// content.
	ListPublished(ctx context.Context) ([]*domain.Course, error)

	// ListByTutor returns all courses owned by the tutor, drafts included,
	// without their nested entities loaded.
	ListByTutor(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error)

	// WithTx returns a CourseStore that runs its operations on the provided
	// transaction.
	WithTx(tx *sql.Tx) CourseStore
}
