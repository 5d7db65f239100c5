package service_test

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// MockUserStore mocks the store.UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockCourseStore mocks the store.CourseStore interface
type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) Save(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseStore) GetByID(ctx context.Context, id domain.CourseID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseStore) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseStore) ListByTutor(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error) {
	args := m.Called(ctx, tutorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Course), args.Error(1)
}

func (m *MockCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return m
}

// MockEnrollmentStore mocks the store.EnrollmentStore interface
type MockEnrollmentStore struct {
	mock.Mock
}

func (m *MockEnrollmentStore) Save(ctx context.Context, enrollment *domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentStore) GetByID(ctx context.Context, id domain.EnrollmentID) (*domain.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) GetByStudentAndCourse(
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

func (m *MockEnrollmentStore) ListByStudent(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) ListByCourse(
	ctx context.Context,
	courseID domain.CourseID,
) ([]*domain.Enrollment, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentStore) WithTx(tx *sql.Tx) store.EnrollmentStore {
	return m
}

// MockCertificateStore mocks the store.CertificateStore interface
type MockCertificateStore struct {
	mock.Mock
}

func (m *MockCertificateStore) Save(ctx context.Context, certificate *domain.Certificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func (m *MockCertificateStore) GetByID(
	ctx context.Context,
	id domain.CertificateID,
) (*domain.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateStore) GetByEnrollment(
	ctx context.Context,
	enrollmentID domain.EnrollmentID,
) (*domain.Certificate, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateStore) ListByStudent(
	ctx context.Context,
	studentID domain.UserID,
) ([]*domain.Certificate, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Certificate), args.Error(1)
}

func (m *MockCertificateStore) WithTx(tx *sql.Tx) store.CertificateStore {
	return m
}

// MockPasswordHasher mocks the auth.PasswordHasher interface
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// MockPasswordVerifier mocks the auth.PasswordVerifier interface
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
