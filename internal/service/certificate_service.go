package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// CertificateService issues and revokes course completion certificates.
type CertificateService interface {
	// IssueCertificate issues a certificate for a completed enrollment.
	// Completion is recomputed at call time: every assignment across every
	// topic of the course must carry an evaluated submission. Issuing marks
	// the enrollment COMPLETED.
	IssueCertificate(ctx context.Context, tutorID domain.UserID, enrollmentID domain.EnrollmentID) (*domain.Certificate, error)

	// RevokeCertificate revokes an issued certificate. Only the tutor who
	// owns the certified course may revoke.
	RevokeCertificate(ctx context.Context, tutorID domain.UserID, certificateID domain.CertificateID) (*domain.Certificate, error)

	// GetCertificate retrieves a certificate. The certified student and the
	// owning tutor may see it.
	GetCertificate(ctx context.Context, actorID domain.UserID, certificateID domain.CertificateID) (*domain.Certificate, error)

	// ListStudentCertificates returns all certificates issued to a student,
	// newest first.
	ListStudentCertificates(ctx context.Context, studentID domain.UserID) ([]*domain.Certificate, error)
}

// CertificateServiceImpl implements the CertificateService interface
type CertificateServiceImpl struct {
	userStore        store.UserStore
	courseStore      store.CourseStore
	enrollmentStore  store.EnrollmentStore
	certificateStore store.CertificateStore
	db               *sql.DB
	logger           *slog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	userStore store.UserStore,
	courseStore store.CourseStore,
	enrollmentStore store.EnrollmentStore,
	certificateStore store.CertificateStore,
	db *sql.DB,
	logger *slog.Logger,
) CertificateService {
	return &CertificateServiceImpl{
		userStore:        userStore,
		courseStore:      courseStore,
		enrollmentStore:  enrollmentStore,
		certificateStore: certificateStore,
		db:               db,
		logger:           logger.With("component", "certificate_service"),
	}
}

// IssueCertificate issues a certificate for a completed enrollment.
func (s *CertificateServiceImpl) IssueCertificate(
	ctx context.Context,
	tutorID domain.UserID,
	enrollmentID domain.EnrollmentID,
) (*domain.Certificate, error) {
	tutor, err := s.userStore.GetByID(ctx, tutorID)
	if err != nil {
		return nil, s.lookupError(err, "tutor")
	}
	if !tutor.CanCreateCourse() {
		s.logger.Debug("non-tutor attempted to issue certificate", "user_id", tutorID)
		return nil, ErrNotTutor
	}

	var certificate *domain.Certificate

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txEnrollments := s.enrollmentStore.WithTx(tx)
		txCertificates := s.certificateStore.WithTx(tx)

		enrollment, err := txEnrollments.GetByID(ctx, enrollmentID)
		if err != nil {
			return s.lookupError(err, "enrollment")
		}

		course, err := s.courseStore.WithTx(tx).GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return s.lookupError(err, "course")
		}
		if course.TutorID != tutorID {
			s.logger.Debug("tutor attempted to certify another tutor's course",
				"enrollment_id", enrollmentID,
				"tutor_id", tutorID)
			return ErrNotCourseOwner
		}

		_, err = txCertificates.GetByEnrollment(ctx, enrollmentID)
		if err == nil {
			s.logger.Debug("certificate already issued", "enrollment_id", enrollmentID)
			return ErrAlreadyIssued
		}
		if !errors.Is(err, store.ErrCertificateNotFound) {
			return s.lookupError(err, "certificate")
		}

		if !courseCompleted(course, enrollment) {
			s.logger.Debug("completion requirements not met", "enrollment_id", enrollmentID)
			return ErrRequirementsNotMet
		}

		cert, err := domain.NewCertificate(enrollment.StudentID, enrollment.CourseID, enrollment.ID)
		if err != nil {
			return err
		}

		if err := enrollment.Complete(); err != nil {
			return err
		}
		if err := txEnrollments.Save(ctx, enrollment); err != nil {
			return fmt.Errorf("failed to save enrollment: %w", err)
		}
		if err := txCertificates.Save(ctx, cert); err != nil {
			if errors.Is(err, store.ErrCertificateExists) {
				return ErrAlreadyIssued
			}
			return fmt.Errorf("failed to save certificate: %w", err)
		}

		certificate = cert
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("certificate issued",
		"certificate_id", certificate.ID,
		"enrollment_id", enrollmentID)
	return certificate, nil
}

// RevokeCertificate revokes an issued certificate.
func (s *CertificateServiceImpl) RevokeCertificate(
	ctx context.Context,
	tutorID domain.UserID,
	certificateID domain.CertificateID,
) (*domain.Certificate, error) {
	tutor, err := s.userStore.GetByID(ctx, tutorID)
	if err != nil {
		return nil, s.lookupError(err, "tutor")
	}
	if !tutor.CanCreateCourse() {
		s.logger.Debug("non-tutor attempted to revoke certificate", "user_id", tutorID)
		return nil, ErrNotTutor
	}

	var certificate *domain.Certificate

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCertificates := s.certificateStore.WithTx(tx)

		cert, err := txCertificates.GetByID(ctx, certificateID)
		if err != nil {
			return s.lookupError(err, "certificate")
		}

		course, err := s.courseStore.WithTx(tx).GetByID(ctx, cert.CourseID)
		if err != nil {
			return s.lookupError(err, "course")
		}
		if course.TutorID != tutorID {
			s.logger.Debug("tutor attempted to revoke another tutor's certificate",
				"certificate_id", certificateID,
				"tutor_id", tutorID)
			return ErrNotCourseOwner
		}

		if err := cert.Revoke(); err != nil {
			return err
		}
		if err := txCertificates.Save(ctx, cert); err != nil {
			return fmt.Errorf("failed to save certificate: %w", err)
		}

		certificate = cert
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("certificate revoked", "certificate_id", certificateID)
	return certificate, nil
}

// GetCertificate retrieves a certificate for its student or the owning
// tutor.
func (s *CertificateServiceImpl) GetCertificate(
	ctx context.Context,
	actorID domain.UserID,
	certificateID domain.CertificateID,
) (*domain.Certificate, error) {
	certificate, err := s.certificateStore.GetByID(ctx, certificateID)
	if err != nil {
		return nil, s.lookupError(err, "certificate")
	}

	if certificate.StudentID == actorID {
		return certificate, nil
	}

	course, err := s.courseStore.GetByID(ctx, certificate.CourseID)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	if course.TutorID != actorID {
		s.logger.Debug("unauthorized certificate access",
			"certificate_id", certificateID,
			"actor_id", actorID)
		return nil, ErrUnauthorized
	}

	return certificate, nil
}

// ListStudentCertificates returns all certificates issued to a student.
func (s *CertificateServiceImpl) ListStudentCertificates(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Certificate, error) {
	certificates, err := s.certificateStore.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list certificates",
			"error", err,
			"student_id", studentID)
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, nil
}

func (s *CertificateServiceImpl) lookupError(err error, entity string) error {
	if store.IsNotFoundError(err) {
		return err
	}
	s.logger.Error("failed to retrieve "+entity, "error", err)
	return fmt.Errorf("failed to retrieve %s: %w", entity, err)
}

// courseCompleted reports whether every assignment across every topic of the
// course has an evaluated submission in the enrollment.
func courseCompleted(course *domain.Course, enrollment *domain.Enrollment) bool {
	assignments := course.AllAssignments()
	if len(assignments) == 0 {
		// A course without assignments has nothing to complete.
		return true
	}
	for _, assignment := range assignments {
		sub := enrollment.SubmissionFor(assignment.ID)
		if sub == nil || !sub.IsEvaluated() {
			return false
		}
	}
	return true
}
