package service_test

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/ExaltAI/lms-demo/internal/domain"
)

// testLogger returns a logger that discards everything. Service tests assert
// on behavior, not log output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockDB returns a sqlmock-backed database for exercising the
// transactional paths of the services. Tests that mutate state declare the
// expected Begin/Commit or Begin/Rollback pair on the returned mock. The
// stores themselves are mocked, so no query expectations are needed.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newStudent(t *testing.T) *domain.User {
	t.Helper()
	student, err := domain.NewUser("student@example.com", "Student", domain.RoleStudent, "hashedpassword")
	require.NoError(t, err)
	return student
}

func newTutor(t *testing.T) *domain.User {
	t.Helper()
	tutor, err := domain.NewUser("tutor@example.com", "Tutor", domain.RoleTutor, "hashedpassword")
	require.NoError(t, err)
	return tutor
}

// newCourse builds a draft course owned by the tutor with one topic carrying
// one assignment and one resource.
func newCourse(t *testing.T, tutorID domain.UserID) (*domain.Course, *domain.Assignment) {
	t.Helper()

	start := time.Now().UTC().AddDate(0, 0, -7)
	dates, err := domain.NewDateRange(start, start.AddDate(0, 6, 0))
	require.NoError(t, err)

	course, err := domain.NewCourse(
		"Practical Go Services",
		"HTTP services, storage layers, and deployment.",
		tutorID,
		12,
		dates,
		"Backend engineers",
	)
	require.NoError(t, err)

	topic, err := course.AddTopic("HTTP handlers", "Routing, middleware, JSON.")
	require.NoError(t, err)
	topic.AddResource("Effective Go", "https://go.dev/doc/effective_go")
	assignment := topic.AddAssignment("Build a router", "Wire a chi router.", time.Now().UTC().AddDate(0, 1, 0))

	return course, assignment
}

// newPublishedCourse is newCourse with the course published.
func newPublishedCourse(t *testing.T, tutorID domain.UserID) (*domain.Course, *domain.Assignment) {
	t.Helper()
	course, assignment := newCourse(t, tutorID)
	require.NoError(t, course.Publish())
	return course, assignment
}

// newEnrollment builds an active enrollment pairing the student with the
// course.
func newEnrollment(t *testing.T, studentID domain.UserID, courseID domain.CourseID) *domain.Enrollment {
	t.Helper()
	enrollment, err := domain.NewEnrollment(studentID, courseID)
	require.NoError(t, err)
	return enrollment
}
