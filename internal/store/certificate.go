package store

import (
	"context"
	"database/sql"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// CertificateStore defines the interface for certificate persistence.
type CertificateStore interface {
	// Save persists the certificate as an idempotent upsert keyed by its ID.
	// Returns ErrCertificateExists if a different certificate already covers
	// the same enrollment.
	Save(ctx context.Context, certificate *domain.Certificate) error

	// GetByID retrieves a certificate by ID.
	// Returns ErrCertificateNotFound if the certificate does not exist.
	GetByID(ctx context.Context, id domain.CertificateID) (*domain.Certificate, error)

	// GetByEnrollment retrieves the certificate issued for an enrollment.
	// Returns ErrCertificateNotFound if none exists.
	GetByEnrollment(ctx context.Context, enrollmentID domain.EnrollmentID) (*domain.Certificate, error)

	// ListByStudent returns all certificates issued to a student, newest
	// first.
	ListByStudent(ctx context.Context, studentID domain.UserID) ([]*domain.Certificate, error)

	// WithTx returns a CertificateStore that runs its operations on the
	// provided transaction.
	WithTx(tx *sql.Tx) CertificateStore
}
