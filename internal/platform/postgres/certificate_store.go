package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/platform/logger"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// PostgresCertificateStore implements the store.CertificateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCertificateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCertificateStore creates a new PostgreSQL implementation of the CertificateStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCertificateStore(db store.DBTX, logger *slog.Logger) *PostgresCertificateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCertificateStore{
		db:     db,
		logger: logger.With(slog.String("component", "certificate_store")),
	}
}

// Ensure PostgresCertificateStore implements store.CertificateStore interface
var _ store.CertificateStore = (*PostgresCertificateStore)(nil)

// WithTx implements store.CertificateStore.WithTx
func (s *PostgresCertificateStore) WithTx(tx *sql.Tx) store.CertificateStore {
	return &PostgresCertificateStore{
		db:     tx,
		logger: s.logger,
	}
}

// Save implements store.CertificateStore.Save
// It upserts the certificate keyed by ID.
// Returns store.ErrCertificateExists if a different certificate already
// covers the enrollment, and store.ErrInvalidReference if the student,
// course or enrollment does not exist.
func (s *PostgresCertificateStore) Save(ctx context.Context, certificate *domain.Certificate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO certificates (id, student_id, course_id, enrollment_id, issued_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		certificate.ID,
		certificate.StudentID,
		certificate.CourseID,
		certificate.EnrollmentID,
		certificate.IssuedAt,
		string(certificate.Status),
	)
	if err != nil {
		if isUniqueViolation(err, "certificates_enrollment_id_key") {
			log.Warn("duplicate certificate during save",
				slog.String("enrollment_id", certificate.EnrollmentID.String()))
			return store.ErrCertificateExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during certificate save",
				slog.String("certificate_id", certificate.ID.String()))
			return store.ErrInvalidReference
		}
		log.Error("failed to save certificate",
			slog.String("error", err.Error()),
			slog.String("certificate_id", certificate.ID.String()))
		return err
	}

	log.Info("certificate saved successfully",
		slog.String("certificate_id", certificate.ID.String()),
		slog.String("enrollment_id", certificate.EnrollmentID.String()),
		slog.String("status", string(certificate.Status)))
	return nil
}

// GetByID implements store.CertificateStore.GetByID
// Returns store.ErrCertificateNotFound if the certificate does not exist.
func (s *PostgresCertificateStore) GetByID(ctx context.Context, id domain.CertificateID) (*domain.Certificate, error) {
	query := `
		SELECT id, student_id, course_id, enrollment_id, issued_at, status
		FROM certificates
		WHERE id = $1
	`
	return s.getCertificate(ctx, query, id)
}

// GetByEnrollment implements store.CertificateStore.GetByEnrollment
// Returns store.ErrCertificateNotFound if no certificate covers the
// enrollment.
func (s *PostgresCertificateStore) GetByEnrollment(ctx context.Context, enrollmentID domain.EnrollmentID) (*domain.Certificate, error) {
	query := `
		SELECT id, student_id, course_id, enrollment_id, issued_at, status
		FROM certificates
		WHERE enrollment_id = $1
	`
	return s.getCertificate(ctx, query, enrollmentID)
}

func (s *PostgresCertificateStore) getCertificate(ctx context.Context, query string, args ...any) (*domain.Certificate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	certificate, err := scanCertificate(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("certificate not found")
			return nil, store.ErrCertificateNotFound
		}
		log.Error("failed to get certificate", slog.String("error", err.Error()))
		return nil, err
	}

	return certificate, nil
}

// ListByStudent implements store.CertificateStore.ListByStudent
// It returns all certificates issued to a student, newest first.
func (s *PostgresCertificateStore) ListByStudent(ctx context.Context, studentID domain.UserID) ([]*domain.Certificate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, student_id, course_id, enrollment_id, issued_at, status
		FROM certificates
		WHERE student_id = $1
		ORDER BY issued_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, studentID)
	if err != nil {
		log.Error("failed to query certificates", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(ctx, rows, s.logger)

	var certificates []*domain.Certificate
	for rows.Next() {
		certificate, err := scanCertificate(rows)
		if err != nil {
			log.Error("failed to scan certificate row", slog.String("error", err.Error()))
			return nil, err
		}
		certificates = append(certificates, certificate)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning certificate rows", slog.String("error", err.Error()))
		return nil, err
	}

	if certificates == nil {
		certificates = []*domain.Certificate{}
	}
	return certificates, nil
}

func scanCertificate(row rowScanner) (*domain.Certificate, error) {
	var certificate domain.Certificate
	var status string

	err := row.Scan(
		&certificate.ID,
		&certificate.StudentID,
		&certificate.CourseID,
		&certificate.EnrollmentID,
		&certificate.IssuedAt,
		&status,
	)
	if err != nil {
		return nil, err
	}

	certificate.Status = domain.CertificateStatus(status)
	return &certificate, nil
}
