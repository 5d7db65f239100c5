package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/store"
)

func newStoreMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// buildCourse returns a draft course with one topic holding one assignment
// and one resource.
func buildCourse(t *testing.T) *domain.Course {
	t.Helper()

	start := time.Now().UTC().AddDate(0, 0, 7)
	dates, err := domain.NewDateRange(start, start.AddDate(0, 6, 0))
	require.NoError(t, err)

	course, err := domain.NewCourse(
		"Practical Go Services",
		"HTTP services, storage layers, and deployment.",
		domain.NewUserID(),
		12,
		dates,
		"Backend engineers",
	)
	require.NoError(t, err)

	topic, err := course.AddTopic("HTTP handlers", "Routing, middleware, JSON.")
	require.NoError(t, err)
	topic.AddAssignment("Build a router", "Wire up chi with middleware.", start.AddDate(0, 1, 0))
	topic.AddResource("Effective Go", "https://go.dev/doc/effective_go")

	return course
}

func TestPostgresCourseStore_Save(t *testing.T) {
	t.Run("writes the aggregate", func(t *testing.T) {
		db, mock := newStoreMock(t)
		courseStore := NewPostgresCourseStore(db, nil)

		course := buildCourse(t)
		topic := course.Topics[0]
		assignment := topic.Assignments[0]
		resource := topic.Resources[0]

		mock.ExpectExec("INSERT INTO courses").
			WithArgs(
				course.ID,
				course.TutorID,
				"Practical Go Services",
				"HTTP services, storage layers, and deployment.",
				12,
				course.Dates.Start,
				course.Dates.End,
				"Backend engineers",
				"draft",
				course.CreatedAt,
				course.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM topics").
			WithArgs(course.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO topics").
			WithArgs(topic.ID, course.ID, "HTTP handlers", "Routing, middleware, JSON.", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO assignments").
			WithArgs(assignment.ID, topic.ID, "Build a router", "Wire up chi with middleware.", assignment.Deadline).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO resources").
			WithArgs(resource.ID, topic.ID, "Effective Go", "https://go.dev/doc/effective_go").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := courseStore.Save(context.Background(), course)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown tutor", func(t *testing.T) {
		db, mock := newStoreMock(t)
		courseStore := NewPostgresCourseStore(db, nil)

		mock.ExpectExec("INSERT INTO courses").
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolationCode})

		err := courseStore.Save(context.Background(), buildCourse(t))

		assert.ErrorIs(t, err, store.ErrInvalidReference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCourseStore_GetByID(t *testing.T) {
	t.Run("loads the aggregate", func(t *testing.T) {
		db, mock := newStoreMock(t)
		courseStore := NewPostgresCourseStore(db, nil)

		source := buildCourse(t)
		topic := source.Topics[0]
		assignment := topic.Assignments[0]
		resource := topic.Resources[0]

		mock.ExpectQuery("FROM courses").
			WithArgs(source.ID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "tutor_id", "title", "description", "duration_weeks",
				"start_date", "end_date", "target_audience", "status",
				"created_at", "updated_at",
			}).AddRow(
				source.ID.String(),
				source.TutorID.String(),
				string(source.Title),
				string(source.Description),
				int(source.Duration),
				source.Dates.Start,
				source.Dates.End,
				string(source.TargetAudience),
				string(source.Status),
				source.CreatedAt,
				source.UpdatedAt,
			))
		mock.ExpectQuery("FROM topics").
			WithArgs(source.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "ord"}).
				AddRow(topic.ID.String(), string(topic.Title), string(topic.Description), topic.Order))
		mock.ExpectQuery("FROM assignments").
			WithArgs(topic.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "deadline"}).
				AddRow(assignment.ID.String(), string(assignment.Title), string(assignment.Description), assignment.Deadline))
		mock.ExpectQuery("FROM resources").
			WithArgs(topic.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "url"}).
				AddRow(resource.ID.String(), string(resource.Title), string(resource.URL)))

		course, err := courseStore.GetByID(context.Background(), source.ID)

		require.NoError(t, err)
		assert.Equal(t, source.ID, course.ID)
		assert.Equal(t, source.Title, course.Title)
		assert.Equal(t, domain.CourseStatusDraft, course.Status)
		require.Len(t, course.Topics, 1)
		assert.Equal(t, topic.ID, course.Topics[0].ID)
		assert.Equal(t, 1, course.Topics[0].Order)
		require.Len(t, course.Topics[0].Assignments, 1)
		assert.Equal(t, assignment.ID, course.Topics[0].Assignments[0].ID)
		require.Len(t, course.Topics[0].Resources, 1)
		assert.Equal(t, resource.URL, course.Topics[0].Resources[0].URL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newStoreMock(t)
		courseStore := NewPostgresCourseStore(db, nil)

		unknownID := domain.NewCourseID()
		mock.ExpectQuery("FROM courses").
			WithArgs(unknownID).
			WillReturnError(sql.ErrNoRows)

		course, err := courseStore.GetByID(context.Background(), unknownID)

		assert.Nil(t, course)
		assert.ErrorIs(t, err, store.ErrCourseNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresCourseStore_ListPublished(t *testing.T) {
	db, mock := newStoreMock(t)
	courseStore := NewPostgresCourseStore(db, nil)

	source := buildCourse(t)
	mock.ExpectQuery("FROM courses").
		WithArgs("published").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tutor_id", "title", "description", "duration_weeks",
			"start_date", "end_date", "target_audience", "status",
			"created_at", "updated_at",
		}).AddRow(
			source.ID.String(),
			source.TutorID.String(),
			string(source.Title),
			string(source.Description),
			int(source.Duration),
			source.Dates.Start,
			source.Dates.End,
			string(source.TargetAudience),
			"published",
			source.CreatedAt,
			source.UpdatedAt,
		))

	courses, err := courseStore.ListPublished(context.Background())

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, domain.CourseStatusPublished, courses[0].Status)
	// List queries return bare rows; children are loaded on GetByID only.
	assert.Empty(t, courses[0].Topics)
	assert.NoError(t, mock.ExpectationsWereMet())
}
