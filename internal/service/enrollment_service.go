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

// EnrollmentService provides student enrollment and assignment submission.
type EnrollmentService interface {
	// EnrollStudent enrolls a student in a published course. The checks run
	// in a fixed order: the user must exist, hold the student role, the
	// course must exist and be open for enrollment, and no prior enrollment
	// may pair the two.
	EnrollStudent(ctx context.Context, studentID domain.UserID, courseID domain.CourseID) (*domain.Enrollment, error)

	// SubmitAssignment records a submission for an assignment inside the
	// student's enrollment. The assignment must belong to the enrolled
	// course; the enrollment aggregate itself enforces the one-submission
	// rule.
	SubmitAssignment(
		ctx context.Context,
		studentID domain.UserID,
		enrollmentID domain.EnrollmentID,
		assignmentID domain.AssignmentID,
		content string,
	) (*domain.Submission, error)

	// GetEnrollment retrieves an enrollment. Students may only see their
	// own; the course's tutor may see any enrollment in their course.
	GetEnrollment(ctx context.Context, actorID domain.UserID, enrollmentID domain.EnrollmentID) (*domain.Enrollment, error)

	// ListStudentEnrollments returns all of a student's enrollments,
	// newest first.
	ListStudentEnrollments(ctx context.Context, studentID domain.UserID) ([]*domain.Enrollment, error)

	// ListCourseEnrollments returns all enrollments in a course. Only the
	// owning tutor may call it.
	ListCourseEnrollments(ctx context.Context, tutorID domain.UserID, courseID domain.CourseID) ([]*domain.Enrollment, error)
}

// EnrollmentServiceImpl implements the EnrollmentService interface
type EnrollmentServiceImpl struct {
	userStore       store.UserStore
	courseStore     store.CourseStore
	enrollmentStore store.EnrollmentStore
	db              *sql.DB
	logger          *slog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	userStore store.UserStore,
	courseStore store.CourseStore,
	enrollmentStore store.EnrollmentStore,
	db *sql.DB,
	logger *slog.Logger,
) EnrollmentService {
	return &EnrollmentServiceImpl{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
		db:              db,
		logger:          logger.With("component", "enrollment_service"),
	}
}

// EnrollStudent enrolls a student in a published course.
func (s *EnrollmentServiceImpl) EnrollStudent(
	ctx context.Context,
	studentID domain.UserID,
	courseID domain.CourseID,
) (*domain.Enrollment, error) {
	student, err := s.userStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, s.lookupError(err, "student")
	}
	if !student.CanEnrollInCourse() {
		s.logger.Debug("non-student attempted to enroll", "user_id", studentID)
		return nil, ErrNotStudent
	}

	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	if !course.IsAvailableForEnrollment() {
		s.logger.Debug("enrollment attempt on unavailable course",
			"course_id", courseID,
			"status", string(course.Status))
		return nil, ErrCourseUnavailable
	}

	_, err = s.enrollmentStore.GetByStudentAndCourse(ctx, studentID, courseID)
	if err == nil {
		s.logger.Debug("duplicate enrollment attempt",
			"student_id", studentID,
			"course_id", courseID)
		return nil, ErrAlreadyEnrolled
	}
	if !errors.Is(err, store.ErrEnrollmentNotFound) {
		s.logger.Error("failed to check existing enrollment",
			"error", err,
			"student_id", studentID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}

	enrollment, err := domain.NewEnrollment(studentID, courseID)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.enrollmentStore.WithTx(tx).Save(ctx, enrollment)
	})
	if err != nil {
		// The unique constraint backstops the duplicate check under
		// concurrent enrollment attempts.
		if errors.Is(err, store.ErrEnrollmentExists) {
			return nil, ErrAlreadyEnrolled
		}
		s.logger.Error("failed to save enrollment",
			"error", err,
			"student_id", studentID,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to save enrollment: %w", err)
	}

	s.logger.Info("student enrolled successfully",
		"enrollment_id", enrollment.ID,
		"student_id", studentID,
		"course_id", courseID)
	return enrollment, nil
}

// SubmitAssignment records a submission for an assignment inside the
// student's enrollment. The cross-aggregate membership check lives here: the
// enrollment aggregate only sees assignment IDs, so the service verifies the
// assignment belongs to the enrolled course before delegating.
func (s *EnrollmentServiceImpl) SubmitAssignment(
	ctx context.Context,
	studentID domain.UserID,
	enrollmentID domain.EnrollmentID,
	assignmentID domain.AssignmentID,
	content string,
) (*domain.Submission, error) {
	var submission *domain.Submission

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txEnrollments := s.enrollmentStore.WithTx(tx)

		enrollment, err := txEnrollments.GetByID(ctx, enrollmentID)
		if err != nil {
			return s.lookupError(err, "enrollment")
		}
		if enrollment.StudentID != studentID {
			s.logger.Debug("student attempted to submit on another student's enrollment",
				"enrollment_id", enrollmentID,
				"student_id", studentID)
			return ErrNotEnrollmentOwner
		}

		course, err := s.courseStore.WithTx(tx).GetByID(ctx, enrollment.CourseID)
		if err != nil {
			return s.lookupError(err, "course")
		}
		if !courseHasAssignment(course, assignmentID) {
			s.logger.Debug("submission for assignment outside the enrolled course",
				"enrollment_id", enrollmentID,
				"assignment_id", assignmentID)
			return ErrAssignmentNotInCourse
		}

		sub, err := enrollment.SubmitAssignment(assignmentID, content)
		if err != nil {
			return err
		}
		submission = sub

		return txEnrollments.Save(ctx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment submitted",
		"enrollment_id", enrollmentID,
		"assignment_id", assignmentID,
		"submission_id", submission.ID)
	return submission, nil
}

// GetEnrollment retrieves an enrollment for its student or the course's
// tutor.
func (s *EnrollmentServiceImpl) GetEnrollment(
	ctx context.Context,
	actorID domain.UserID,
	enrollmentID domain.EnrollmentID,
) (*domain.Enrollment, error) {
	enrollment, err := s.enrollmentStore.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, s.lookupError(err, "enrollment")
	}

	if enrollment.StudentID == actorID {
		return enrollment, nil
	}

	course, err := s.courseStore.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	if course.TutorID != actorID {
		s.logger.Debug("unauthorized enrollment access",
			"enrollment_id", enrollmentID,
			"actor_id", actorID)
		return nil, ErrNotEnrollmentOwner
	}

	return enrollment, nil
}

// ListStudentEnrollments returns all of a student's enrollments.
func (s *EnrollmentServiceImpl) ListStudentEnrollments(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Enrollment, error) {
	enrollments, err := s.enrollmentStore.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list enrollments",
			"error", err,
			"student_id", studentID)
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListCourseEnrollments returns all enrollments in a course owned by the
// tutor.
func (s *EnrollmentServiceImpl) ListCourseEnrollments(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) ([]*domain.Enrollment, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, s.lookupError(err, "course")
	}
	if course.TutorID != tutorID {
		s.logger.Debug("tutor attempted to list another tutor's enrollments",
			"course_id", courseID,
			"tutor_id", tutorID)
		return nil, ErrNotCourseOwner
	}

	enrollments, err := s.enrollmentStore.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to list course enrollments",
			"error", err,
			"course_id", courseID)
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *EnrollmentServiceImpl) lookupError(err error, entity string) error {
	if store.IsNotFoundError(err) {
		return err
	}
	s.logger.Error("failed to retrieve "+entity, "error", err)
	return fmt.Errorf("failed to retrieve %s: %w", entity, err)
}

// courseHasAssignment reports whether the assignment belongs to any topic of
// the course.
func courseHasAssignment(course *domain.Course, assignmentID domain.AssignmentID) bool {
	for _, assignment := range course.AllAssignments() {
		if assignment.ID == assignmentID {
			return true
		}
	}
	return false
}
