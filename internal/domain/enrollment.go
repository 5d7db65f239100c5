package domain

import (
	"fmt"
	"time"
)

// EnrollmentStatus represents the lifecycle state of an enrollment.
type EnrollmentStatus string

// Enrollment lifecycle. COMPLETED and WITHDRAWN are terminal.
const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusWithdrawn EnrollmentStatus = "withdrawn"
)

// SubmissionStatus represents the evaluation state of a submission.
type SubmissionStatus string

// Submission lifecycle. EVALUATED is terminal; grading is one-shot.
const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusEvaluated SubmissionStatus = "evaluated"
)

// Enrollment business-rule errors
var (
	ErrEnrollmentNotActive = fmt.Errorf("%w: only active enrollments may submit assignments", ErrInvalidOperation)
	ErrEnrollmentFinished  = fmt.Errorf("%w: enrollment is not active", ErrInvalidOperation)
	ErrAlreadySubmitted    = fmt.Errorf("%w: assignment already submitted", ErrInvalidOperation)
	ErrAlreadyEvaluated    = fmt.Errorf("%w: submission already evaluated", ErrInvalidOperation)
)

// Submission is a student's answer to one assignment, owned by an
// Enrollment. The assignment is referenced by id only; the aggregate never
// holds a pointer into the Course aggregate.
type Submission struct {
	ID           SubmissionID     `json:"id"`
	AssignmentID AssignmentID     `json:"assignment_id"`
	Content      string           `json:"content"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	Status       SubmissionStatus `json:"status"`
	Grade        *Grade           `json:"grade,omitempty"`
	Feedback     *Feedback        `json:"feedback,omitempty"`
}

// Evaluate records a grade and feedback and marks the submission EVALUATED.
// Evaluation is a one-shot operation; a second call fails regardless of
// arguments.
func (s *Submission) Evaluate(grade Grade, feedback Feedback) error {
	if s.Status == SubmissionStatusEvaluated {
		return ErrAlreadyEvaluated
	}

	s.Grade = &grade
	s.Feedback = &feedback
	s.Status = SubmissionStatusEvaluated
	return nil
}

// IsEvaluated reports whether the submission has been graded.
func (s *Submission) IsEvaluated() bool {
	return s.Status == SubmissionStatusEvaluated
}

// Enrollment is the aggregate root tying a student to a course. It
// exclusively owns its Submissions, which are appended and updated but never
// deleted, preserving the academic record.
type Enrollment struct {
	ID          EnrollmentID     `json:"id"`
	StudentID   UserID           `json:"student_id"`
	CourseID    CourseID         `json:"course_id"`
	EnrolledAt  time.Time        `json:"enrolled_at"`
	Status      EnrollmentStatus `json:"status"`
	Submissions []*Submission    `json:"submissions"`
}

// NewEnrollment creates an ACTIVE enrollment with a fresh ID, the current
// UTC time and no submissions.
func NewEnrollment(studentID UserID, courseID CourseID) (*Enrollment, error) {
	if studentID.IsNil() {
		return nil, fmt.Errorf("%w: enrollment student ID cannot be empty", ErrValidation)
	}
	if courseID.IsNil() {
		return nil, fmt.Errorf("%w: enrollment course ID cannot be empty", ErrValidation)
	}

	return &Enrollment{
		ID:         NewEnrollmentID(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
		Status:     EnrollmentStatusActive,
	}, nil
}

// SubmitAssignment creates a PENDING submission for the given assignment and
// appends it. The enrollment must be active, and at most one submission may
// exist per assignment.
//
// The aggregate does not verify that assignmentID belongs to the enrolled
// course; the invoking service must load the Course aggregate and check
// membership before calling this method.
func (e *Enrollment) SubmitAssignment(assignmentID AssignmentID, content string) (*Submission, error) {
	if e.Status != EnrollmentStatusActive {
		return nil, ErrEnrollmentNotActive
	}

	if e.SubmissionFor(assignmentID) != nil {
		return nil, ErrAlreadySubmitted
	}

	submission := &Submission{
		ID:           NewSubmissionID(),
		AssignmentID: assignmentID,
		Content:      content,
		SubmittedAt:  time.Now().UTC(),
		Status:       SubmissionStatusPending,
	}
	e.Submissions = append(e.Submissions, submission)
	return submission, nil
}

// SubmissionFor returns the submission for the given assignment, or nil if
// none exists.
func (e *Enrollment) SubmissionFor(assignmentID AssignmentID) *Submission {
	for _, submission := range e.Submissions {
		if submission.AssignmentID == assignmentID {
			return submission
		}
	}
	return nil
}

// Complete marks the enrollment COMPLETED. The enrollment must be active.
func (e *Enrollment) Complete() error {
	if e.Status != EnrollmentStatusActive {
		return ErrEnrollmentFinished
	}
	e.Status = EnrollmentStatusCompleted
	return nil
}

// Withdraw marks the enrollment WITHDRAWN. The enrollment must be active.
func (e *Enrollment) Withdraw() error {
	if e.Status != EnrollmentStatusActive {
		return ErrEnrollmentFinished
	}
	e.Status = EnrollmentStatusWithdrawn
	return nil
}
