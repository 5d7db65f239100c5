package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
	"github.com/ExaltAI/lms-demo/internal/service/auth"
)

// mockUserService mocks service.UserService
type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(
	ctx context.Context,
	email, name string,
	role domain.Role,
	password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, name, role, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// mockJWTService mocks auth.JWTService with fixed token strings.
type mockJWTService struct {
	AccessToken  string
	RefreshToken string
	Claims       *auth.Claims
	GenerateErr  error
	ValidateErr  error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID domain.UserID) (string, error) {
	return m.AccessToken, m.GenerateErr
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID domain.UserID) (string, error) {
	return m.RefreshToken, m.GenerateErr
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}

// mockCourseService mocks service.CourseService
type mockCourseService struct {
	mock.Mock
}

func (m *mockCourseService) CreateCourse(
	ctx context.Context,
	tutorID domain.UserID,
	input service.CreateCourseInput,
) (*domain.Course, error) {
	args := m.Called(ctx, tutorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *mockCourseService) AddTopic(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	input service.AddTopicInput,
) (*domain.Topic, error) {
	args := m.Called(ctx, tutorID, courseID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Topic), args.Error(1)
}

func (m *mockCourseService) AddAssignment(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	topicID domain.TopicID,
	input service.AddAssignmentInput,
) (*domain.Assignment, error) {
	args := m.Called(ctx, tutorID, courseID, topicID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *mockCourseService) AddResource(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	topicID domain.TopicID,
	input service.AddResourceInput,
) (*domain.LearningResource, error) {
	args := m.Called(ctx, tutorID, courseID, topicID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningResource), args.Error(1)
}

func (m *mockCourseService) Publish(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) (*domain.Course, error) {
	args := m.Called(ctx, tutorID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *mockCourseService) Archive(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) (*domain.Course, error) {
	args := m.Called(ctx, tutorID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *mockCourseService) GetCourse(ctx context.Context, courseID domain.CourseID) (*domain.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *mockCourseService) ListPublishedCourses(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *mockCourseService) ListTutorCourses(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error) {
	args := m.Called(ctx, tutorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

// mockEnrollmentService mocks service.EnrollmentService
type mockEnrollmentService struct {
	mock.Mock
}

func (m *mockEnrollmentService) EnrollStudent(
	ctx context.Context,
	studentID domain.UserID,
	courseID domain.CourseID,
) (*domain.Enrollment, error) {
	args := m.Called(ctx, studentID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *mockEnrollmentService) SubmitAssignment(
	ctx context.Context,
	studentID domain.UserID,
	enrollmentID domain.EnrollmentID,
	assignmentID domain.AssignmentID,
	content string,
) (*domain.Submission, error) {
	args := m.Called(ctx, studentID, enrollmentID, assignmentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *mockEnrollmentService) GetEnrollment(
	ctx context.Context,
	actorID domain.UserID,
	enrollmentID domain.EnrollmentID,
) (*domain.Enrollment, error) {
	args := m.Called(ctx, actorID, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *mockEnrollmentService) ListStudentEnrollments(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *mockEnrollmentService) ListCourseEnrollments(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, tutorID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

// mockEvaluationService mocks service.EvaluationService
type mockEvaluationService struct {
	mock.Mock
}

func (m *mockEvaluationService) EvaluateSubmission(
	ctx context.Context,
	tutorID domain.UserID,
	enrollmentID domain.EnrollmentID,
	assignmentID domain.AssignmentID,
	grade int,
	feedback string,
) (*domain.Submission, error) {
	args := m.Called(ctx, tutorID, enrollmentID, assignmentID, grade, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

// mockCertificateService mocks service.CertificateService
type mockCertificateService struct {
	mock.Mock
}

func (m *mockCertificateService) IssueCertificate(
	ctx context.Context,
	tutorID domain.UserID,
	enrollmentID domain.EnrollmentID,
) (*domain.Certificate, error) {
	args := m.Called(ctx, tutorID, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *mockCertificateService) RevokeCertificate(
	ctx context.Context,
	tutorID domain.UserID,
	certificateID domain.CertificateID,
) (*domain.Certificate, error) {
	args := m.Called(ctx, tutorID, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *mockCertificateService) GetCertificate(
	ctx context.Context,
	actorID domain.UserID,
	certificateID domain.CertificateID,
) (*domain.Certificate, error) {
	args := m.Called(ctx, actorID, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *mockCertificateService) ListStudentCertificates(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Certificate, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Certificate), args.Error(1)
}
