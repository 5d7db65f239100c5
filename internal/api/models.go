package api

import (
	"time"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=200"`
	Password string `json:"password" validate:"required,min=12,max=72"`
	Role     string `json:"role"     validate:"required,oneof=student tutor"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID domain.UserID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        domain.UserID `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      string        `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateCourseRequest defines the payload for creating a course.
type CreateCourseRequest struct {
	Title          string    `json:"title"           validate:"required"`
	Description    string    `json:"description"     validate:"required"`
	DurationWeeks  int       `json:"duration_weeks"  validate:"required"`
	StartDate      time.Time `json:"start_date"      validate:"required"`
	EndDate        time.Time `json:"end_date"        validate:"required"`
	TargetAudience string    `json:"target_audience" validate:"required"`
}

// AddTopicRequest defines the payload for adding a topic to a course.
type AddTopicRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AddAssignmentRequest defines the payload for adding an assignment to a topic.
type AddAssignmentRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description" validate:"required"`
	Deadline    time.Time `json:"deadline"    validate:"required"`
}

// AddResourceRequest defines the payload for adding a learning resource to a topic.
type AddResourceRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url"   validate:"required"`
}

// ResourceResponse is the public representation of a learning resource.
type ResourceResponse struct {
	ID    domain.ResourceID `json:"id"`
	Title string            `json:"title"`
	URL   string            `json:"url"`
}

// AssignmentResponse is the public representation of an assignment.
type AssignmentResponse struct {
	ID          domain.AssignmentID `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Deadline    time.Time           `json:"deadline"`
}

// TopicResponse is the public representation of a topic and its children.
type TopicResponse struct {
	ID          domain.TopicID       `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Order       int                  `json:"order"`
	Assignments []AssignmentResponse `json:"assignments"`
	Resources   []ResourceResponse   `json:"resources"`
}

// CourseResponse is the public representation of a course. Topics are only
// populated on single-course endpoints; list endpoints return the bare
// course row.
type CourseResponse struct {
	ID             domain.CourseID `json:"id"`
	TutorID        domain.UserID   `json:"tutor_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	DurationWeeks  int             `json:"duration_weeks"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	TargetAudience string          `json:"target_audience"`
	Status         string          `json:"status"`
	Topics         []TopicResponse `json:"topics,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EnrollRequest defines the payload for enrolling in a course.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
}

// SubmitAssignmentRequest defines the payload for submitting an assignment.
type SubmitAssignmentRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required,uuid"`
	Content      string `json:"content"       validate:"required"`
}

// EvaluateSubmissionRequest defines the payload for grading a submission.
type EvaluateSubmissionRequest struct {
	Grade    int    `json:"grade"    validate:"min=0,max=100"`
	Feedback string `json:"feedback" validate:"required"`
}

// SubmissionResponse is the public representation of a submission.
type SubmissionResponse struct {
	ID           domain.SubmissionID `json:"id"`
	AssignmentID domain.AssignmentID `json:"assignment_id"`
	Content      string              `json:"content"`
	SubmittedAt  time.Time           `json:"submitted_at"`
	Status       string              `json:"status"`
	Grade        *int                `json:"grade,omitempty"`
	Feedback     *string             `json:"feedback,omitempty"`
}

// EnrollmentResponse is the public representation of an enrollment.
type EnrollmentResponse struct {
	ID          domain.EnrollmentID  `json:"id"`
	StudentID   domain.UserID        `json:"student_id"`
	CourseID    domain.CourseID      `json:"course_id"`
	EnrolledAt  time.Time            `json:"enrolled_at"`
	Status      string               `json:"status"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// IssueCertificateRequest defines the payload for issuing a certificate.
type IssueCertificateRequest struct {
	EnrollmentID string `json:"enrollment_id" validate:"required,uuid"`
}

// CertificateResponse is the public representation of a certificate.
type CertificateResponse struct {
	ID           domain.CertificateID `json:"id"`
	StudentID    domain.UserID        `json:"student_id"`
	CourseID     domain.CourseID      `json:"course_id"`
	EnrollmentID domain.EnrollmentID  `json:"enrollment_id"`
	IssuedAt     time.Time            `json:"issued_at"`
	Status       string               `json:"status"`
}

// Conversion helpers from domain entities to response DTOs.

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     string(user.Email),
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func toCourseResponse(course *domain.Course, includeTopics bool) CourseResponse {
	resp := CourseResponse{
		ID:             course.ID,
		TutorID:        course.TutorID,
		Title:          string(course.Title),
		Description:    string(course.Description),
		DurationWeeks:  int(course.Duration),
		StartDate:      course.Dates.Start,
		EndDate:        course.Dates.End,
		TargetAudience: string(course.TargetAudience),
		Status:         string(course.Status),
		CreatedAt:      course.CreatedAt,
		UpdatedAt:      course.UpdatedAt,
	}
	if includeTopics {
		topics := course.OrderedTopics()
		resp.Topics = make([]TopicResponse, 0, len(topics))
		for _, topic := range topics {
			resp.Topics = append(resp.Topics, toTopicResponse(topic))
		}
	}
	return resp
}

func toTopicResponse(topic *domain.Topic) TopicResponse {
	resp := TopicResponse{
		ID:          topic.ID,
		Title:       string(topic.Title),
		Description: string(topic.Description),
		Order:       topic.Order,
		Assignments: make([]AssignmentResponse, 0, len(topic.Assignments)),
		Resources:   make([]ResourceResponse, 0, len(topic.Resources)),
	}
	for _, assignment := range topic.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(assignment))
	}
	for _, resource := range topic.Resources {
		resp.Resources = append(resp.Resources, ResourceResponse{
			ID:    resource.ID,
			Title: string(resource.Title),
			URL:   string(resource.URL),
		})
	}
	return resp
}

func toAssignmentResponse(assignment *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          assignment.ID,
		Title:       string(assignment.Title),
		Description: string(assignment.Description),
		Deadline:    assignment.Deadline,
	}
}

func toSubmissionResponse(sub *domain.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:           sub.ID,
		AssignmentID: sub.AssignmentID,
		Content:      sub.Content,
		SubmittedAt:  sub.SubmittedAt,
		Status:       string(sub.Status),
	}
	if sub.Grade != nil {
		grade := int(*sub.Grade)
		resp.Grade = &grade
	}
	if sub.Feedback != nil {
		feedback := string(*sub.Feedback)
		resp.Feedback = &feedback
	}
	return resp
}

func toEnrollmentResponse(enrollment *domain.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:          enrollment.ID,
		StudentID:   enrollment.StudentID,
		CourseID:    enrollment.CourseID,
		EnrolledAt:  enrollment.EnrolledAt,
		Status:      string(enrollment.Status),
		Submissions: make([]SubmissionResponse, 0, len(enrollment.Submissions)),
	}
	for _, submission := range enrollment.Submissions {
		resp.Submissions = append(resp.Submissions, toSubmissionResponse(submission))
	}
	return resp
}

func toCertificateResponse(certificate *domain.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:           certificate.ID,
		StudentID:    certificate.StudentID,
		CourseID:     certificate.CourseID,
		EnrollmentID: certificate.EnrollmentID,
		IssuedAt:     certificate.IssuedAt,
		Status:       string(certificate.Status),
	}
}
