package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// EvaluationService grades student submissions on behalf of the owning
// tutor.
type EvaluationService interface {
	// EvaluateSubmission records a grade and feedback on a pending
	// submission. Only the tutor who owns the enrolled course may evaluate,
	// and a submission can be evaluated exactly once.
	EvaluateSubmission(
		ctx context.Context,
		tutorID domain.UserID,
		enrollmentID domain.EnrollmentID,
		assignmentID domain.AssignmentID,
		grade int,
		feedback string,
	) (*domain.Submission, error)
}

// EvaluationServiceImpl implements the EvaluationService interface
type EvaluationServiceImpl struct {
	userStore       store.UserStore
	courseStore     store.CourseStore
	enrollmentStore store.EnrollmentStore
	db              *sql.DB
	logger          *slog.Logger
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(
	userStore store.UserStore,
	courseStore store.CourseStore,
	enrollmentStore store.EnrollmentStore,
	db *sql.DB,
	logger *slog.Logger,
) EvaluationService {
	return &EvaluationServiceImpl{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
		db:              db,
		logger:          logger.With("component", "evaluation_service"),
	}
}

// EvaluateSubmission records a grade and feedback on a pending submission.
func (s *EvaluationServiceImpl) EvaluateSubmission(
	ctx context.Context,
	tutorID domain.UserID,
	enrollmentID domain.EnrollmentID,
	assignmentID domain.AssignmentID,
	grade int,
	feedback string,
) (*domain.Submission, error) {
	gradeVal, err := domain.NewGrade(grade)
	if err != nil {
		return nil, err
	}
	feedbackVal, err := domain.NewFeedback(feedback)
	if err != nil {
		return nil, err
	}

	tutor, err := s.userStore.GetByID(ctx, tutorID)
	if err != nil {
		return nil, s.lookupError(err, "tutor")
	}
	if !tutor.CanCreateCourse() {
		s.logger.Debug("non-tutor attempted to evaluate submission", "user_id", tutorID)
		return nil, ErrNotTutor
	}

	var submission *domain.Submission

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txEnrollments := s.enrollmentStore.WithTx(tx)

		enrollment, err := txEnrollments.GetByID(ctx, enrollmentID)
		if err != nil {
			return s.lookupError(err, "enrollment")
		}

		course, err := s.courseStore.WithTx(tx).GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return s.lookupError(err, "course")
		}
		if course.TutorID != tutorID {
			s.logger.Debug("tutor attempted to evaluate submission in another tutor's course",
				"enrollment_id", enrollmentID,
				"tutor_id", tutorID)
			return ErrNotCourseOwner
		}

		sub := enrollment.SubmissionFor(assignmentID)
		if sub == nil {
			s.logger.Debug("no submission to evaluate",
				"enrollment_id", enrollmentID,
				"assignment_id", assignmentID)
			return ErrSubmissionMissing
		}

		if err := sub.Evaluate(gradeVal, feedbackVal); err != nil {
			return err
		}
		submission = sub

		return txEnrollments.Save(ctx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission evaluated",
		"enrollment_id", enrollmentID,
		"assignment_id", assignmentID,
		"grade", grade)
	return submission, nil
}

func (s *EvaluationServiceImpl) lookupError(err error, entity string) error {
	if store.IsNotFoundError(err) {
		return err
	}
	s.logger.Error("failed to retrieve "+entity, "error", err)
	return fmt.Errorf("failed to retrieve %s: %w", entity, err)
}
