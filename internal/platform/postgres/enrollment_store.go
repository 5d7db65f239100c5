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

// PostgresEnrollmentStore implements the store.EnrollmentStore interface
// using a PostgreSQL database as the storage backend. An enrollment is
// persisted as one row plus child rows for its submissions.
type PostgresEnrollmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEnrollmentStore creates a new PostgreSQL implementation of the EnrollmentStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEnrollmentStore(db store.DBTX, logger *slog.Logger) *PostgresEnrollmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEnrollmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "enrollment_store")),
	}
}

// Ensure PostgresEnrollmentStore implements store.EnrollmentStore interface
var _ store.EnrollmentStore = (*PostgresEnrollmentStore)(nil)

// WithTx implements store.EnrollmentStore.WithTx
func (s *PostgresEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore {
	return &PostgresEnrollmentStore{
		db:     tx,
		logger: s.logger,
	}
}

// Save implements store.EnrollmentStore.Save
// It upserts the enrollment row and each of its submissions. Submissions are
// only ever added or updated, never removed. Save issues multiple
// statements; callers that need atomicity should run it on a transaction
// obtained via WithTx.
// Returns store.ErrEnrollmentExists if a different enrollment already pairs
// the student with the course, and store.ErrInvalidReference if the student
// or course does not exist.
func (s *PostgresEnrollmentStore) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollmentQuery := `
		INSERT INTO enrollments (id, student_id, course_id, enrolled_at, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status
	`
	_, err := s.db.ExecContext(
		ctx,
		enrollmentQuery,
		enrollment.ID,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
		string(enrollment.Status),
	)
	if err != nil {
		if isUniqueViolation(err, "enrollments_student_id_course_id_key") {
			log.Warn("duplicate enrollment during save",
				slog.String("student_id", enrollment.StudentID.String()),
				slog.String("course_id", enrollment.CourseID.String()))
			return store.ErrEnrollmentExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during enrollment save",
				slog.String("enrollment_id", enrollment.ID.String()))
			return store.ErrInvalidReference
		}
		log.Error("failed to save enrollment",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return err
	}

	submissionQuery := `
		INSERT INTO submissions (id, enrollment_id, assignment_id, content,
		                         submitted_at, status, grade, feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    grade = EXCLUDED.grade,
		    feedback = EXCLUDED.feedback
	`
	for _, sub := range enrollment.Submissions {
		var grade sql.NullInt64
		if sub.Grade != nil {
			grade = sql.NullInt64{Int64: int64(*sub.Grade), Valid: true}
		}
		var feedback sql.NullString
		if sub.Feedback != nil {
			feedback = sql.NullString{String: string(*sub.Feedback), Valid: true}
		}

		if _, err := s.db.ExecContext(ctx, submissionQuery,
			sub.ID,
			enrollment.ID,
			sub.AssignmentID,
			sub.Content,
			sub.SubmittedAt,
			string(sub.Status),
			grade,
			feedback,
		); err != nil {
			log.Error("failed to save submission",
				slog.String("error", err.Error()),
				slog.String("enrollment_id", enrollment.ID.String()),
				slog.String("submission_id", sub.ID.String()))
			return err
		}
	}

	log.Info("enrollment saved successfully",
		slog.String("enrollment_id", enrollment.ID.String()),
		slog.String("status", string(enrollment.Status)),
		slog.Int("submission_count", len(enrollment.Submissions)))
	return nil
}

// GetByID implements store.EnrollmentStore.GetByID
// It loads the full aggregate including submissions.
// Returns store.ErrEnrollmentNotFound if the enrollment does not exist.
func (s *PostgresEnrollmentStore) GetByID(ctx context.Context, id domain.EnrollmentID) (*domain.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, enrolled_at, status
		FROM enrollments
		WHERE id = $1
	`
	return s.getEnrollment(ctx, query, id)
}

// GetByStudentAndCourse implements store.EnrollmentStore.GetByStudentAndCourse
// Returns store.ErrEnrollmentNotFound if the student is not enrolled in the
// course.
func (s *PostgresEnrollmentStore) GetByStudentAndCourse(
	ctx context.Context,
	studentID domain.UserID,
	courseID domain.CourseID,
) (*domain.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, enrolled_at, status
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2
	`
	return s.getEnrollment(ctx, query, studentID, courseID)
}

func (s *PostgresEnrollmentStore) getEnrollment(ctx context.Context, query string, args ...any) (*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	enrollment, err := scanEnrollment(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("enrollment not found")
			return nil, store.ErrEnrollmentNotFound
		}
		log.Error("failed to get enrollment", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.loadSubmissions(ctx, enrollment); err != nil {
		log.Error("failed to load submissions",
			slog.String("error", err.Error()),
			slog.String("enrollment_id", enrollment.ID.String()))
		return nil, err
	}

	return enrollment, nil
}

func (s *PostgresEnrollmentStore) loadSubmissions(ctx context.Context, enrollment *domain.Enrollment) error {
	query := `
		SELECT id, assignment_id, content, submitted_at, status, grade, feedback
		FROM submissions
		WHERE enrollment_id = $1
		ORDER BY submitted_at
	`

	rows, err := s.db.QueryContext(ctx, query, enrollment.ID)
	if err != nil {
		return err
	}
	defer closeRows(ctx, rows, s.logger)

	for rows.Next() {
		sub := &domain.Submission{}
		var status string
		var grade sql.NullInt64
		var feedback sql.NullString

		if err := rows.Scan(
			&sub.ID,
			&sub.AssignmentID,
			&sub.Content,
			&sub.SubmittedAt,
			&status,
			&grade,
			&feedback,
		); err != nil {
			return err
		}

		sub.Status = domain.SubmissionStatus(status)
		if grade.Valid {
			g := domain.Grade(grade.Int64)
			sub.Grade = &g
		}
		if feedback.Valid {
			f := domain.Feedback(feedback.String)
			sub.Feedback = &f
		}
		enrollment.Submissions = append(enrollment.Submissions, sub)
	}
	return rows.Err()
}

// ListByStudent implements store.EnrollmentStore.ListByStudent
// It returns all of a student's enrollments including submissions, newest
// first.
func (s *PostgresEnrollmentStore) ListByStudent(ctx context.Context, studentID domain.UserID) ([]*domain.Enrollment, error) {
	return s.listEnrollments(ctx, `
		SELECT id, student_id, course_id, enrolled_at, status
		FROM enrollments
		WHERE student_id = $1
		ORDER BY enrolled_at DESC
	`, studentID)
}

// ListByCourse implements store.EnrollmentStore.ListByCourse
// It returns all enrollments in a course including submissions, newest
// first.
func (s *PostgresEnrollmentStore) ListByCourse(ctx context.Context, courseID domain.CourseID) ([]*domain.Enrollment, error) {
	return s.listEnrollments(ctx, `
		SELECT id, student_id, course_id, enrolled_at, status
		FROM enrollments
		WHERE course_id = $1
		ORDER BY enrolled_at DESC
	`, courseID)
}

func (s *PostgresEnrollmentStore) listEnrollments(ctx context.Context, query string, args ...any) ([]*domain.Enrollment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query enrollments", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(ctx, rows, s.logger)

	var enrollments []*domain.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			log.Error("failed to scan enrollment row", slog.String("error", err.Error()))
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning enrollment rows", slog.String("error", err.Error()))
		return nil, err
	}

	for _, enrollment := range enrollments {
		if err := s.loadSubmissions(ctx, enrollment); err != nil {
			log.Error("failed to load submissions",
				slog.String("error", err.Error()),
				slog.String("enrollment_id", enrollment.ID.String()))
			return nil, err
		}
	}

	if enrollments == nil {
		enrollments = []*domain.Enrollment{}
	}
	return enrollments, nil
}

func scanEnrollment(row rowScanner) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	var status string

	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.EnrolledAt,
		&status,
	)
	if err != nil {
		return nil, err
	}

	enrollment.Status = domain.EnrollmentStatus(status)
	return &enrollment, nil
}
