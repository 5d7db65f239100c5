package store

import (
	"context"
	"database/sql"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Save persists the user as an idempotent upsert keyed by its ID.
	// Returns ErrEmailExists if another user already holds the email.
	// Returns validation errors from the domain User if data is invalid.
	Save(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
