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

// PostgresCourseStore implements the store.CourseStore interface
// using a PostgreSQL database as the storage backend. A course is persisted
// as one row plus child rows for its topics, assignments and resources.
type PostgresCourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the CourseStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCourseStore(db store.DBTX, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		db:     db,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore interface
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// WithTx implements store.CourseStore.WithTx
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{
		db:     tx,
		logger: s.logger,
	}
}

// Save implements store.CourseStore.Save
// It upserts the course row and rewrites the topic, assignment and resource
// child rows to mirror the aggregate exactly. Save issues multiple
// statements; callers that need atomicity should run it on a transaction
// obtained via WithTx.
// Returns store.ErrInvalidReference if the tutor does not exist.
func (s *PostgresCourseStore) Save(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	courseQuery := `
		INSERT INTO courses (id, tutor_id, title, description, duration_weeks,
		                     start_date, end_date, target_audience, status,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    duration_weeks = EXCLUDED.duration_weeks,
		    start_date = EXCLUDED.start_date,
		    end_date = EXCLUDED.end_date,
		    target_audience = EXCLUDED.target_audience,
		    status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		courseQuery,
		course.ID,
		course.TutorID,
		string(course.Title),
		string(course.Description),
		int(course.Duration),
		course.Dates.Start,
		course.Dates.End,
		string(course.TargetAudience),
		string(course.Status),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during course save",
				slog.String("course_id", course.ID.String()),
				slog.String("tutor_id", course.TutorID.String()))
			return store.ErrInvalidReference
		}
		log.Error("failed to save course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	// Rewrite children wholesale. Topic and assignment IDs are stable in the
	// domain, so reinserting preserves external references by ID.
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM topics WHERE course_id = $1`, course.ID); err != nil {
		log.Error("failed to clear course topics",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	for _, topic := range course.Topics {
		if err := s.insertTopic(ctx, course.ID, topic); err != nil {
			log.Error("failed to save course topic",
				slog.String("error", err.Error()),
				slog.String("course_id", course.ID.String()),
				slog.String("topic_id", topic.ID.String()))
			return err
		}
	}

	log.Info("course saved successfully",
		slog.String("course_id", course.ID.String()),
		slog.String("status", string(course.Status)),
		slog.Int("topic_count", len(course.Topics)))
	return nil
}

func (s *PostgresCourseStore) insertTopic(ctx context.Context, courseID domain.CourseID, topic *domain.Topic) error {
	topicQuery := `
		INSERT INTO topics (id, course_id, title, description, ord)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.ExecContext(ctx, topicQuery,
		topic.ID,
		courseID,
		string(topic.Title),
		string(topic.Description),
		topic.Order,
	); err != nil {
		return err
	}

	assignmentQuery := `
		INSERT INTO assignments (id, topic_id, title, description, deadline)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, assignment := range topic.Assignments {
		if _, err := s.db.ExecContext(ctx, assignmentQuery,
			assignment.ID,
			topic.ID,
			string(assignment.Title),
			string(assignment.Description),
			assignment.Deadline,
		); err != nil {
			return err
		}
	}

	resourceQuery := `
		INSERT INTO resources (id, topic_id, title, url)
		VALUES ($1, $2, $3, $4)
	`
	for _, resource := range topic.Resources {
		if _, err := s.db.ExecContext(ctx, resourceQuery,
			resource.ID,
			topic.ID,
			string(resource.Title),
			string(resource.URL),
		); err != nil {
			return err
		}
	}

	return nil
}

// GetByID implements store.CourseStore.GetByID
// It loads the full aggregate including topics, assignments and resources.
// Returns store.ErrCourseNotFound if the course does not exist.
func (s *PostgresCourseStore) GetByID(ctx context.Context, id domain.CourseID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving course by ID", slog.String("course_id", id.String()))

	query := `
		SELECT id, tutor_id, title, description, duration_weeks,
		       start_date, end_date, target_audience, status,
		       created_at, updated_at
		FROM courses
		WHERE id = $1
	`

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_id", id.String()))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course by ID",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, err
	}

	if err := s.loadTopics(ctx, course); err != nil {
		log.Error("failed to load course topics",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, err
	}

	return course, nil
}

func (s *PostgresCourseStore) loadTopics(ctx context.Context, course *domain.Course) error {
	query := `
		SELECT id, title, description, ord
		FROM topics
		WHERE course_id = $1
		ORDER BY ord
	`

	rows, err := s.db.QueryContext(ctx, query, course.ID)
	if err != nil {
		return err
	}
	defer closeRows(ctx, rows, s.logger)

	var topics []*domain.Topic
	for rows.Next() {
		topic := &domain.Topic{}
		var title, description string

		if err := rows.Scan(&topic.ID, &title, &description, &topic.Order); err != nil {
			return err
		}
		topic.Title = domain.TopicTitle(title)
		topic.Description = domain.TopicDescription(description)
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, topic := range topics {
		if err := s.loadAssignments(ctx, topic); err != nil {
			return err
		}
		if err := s.loadResources(ctx, topic); err != nil {
			return err
		}
	}

	course.Topics = topics
	return nil
}

func (s *PostgresCourseStore) loadAssignments(ctx context.Context, topic *domain.Topic) error {
	query := `
		SELECT id, title, description, deadline
		FROM assignments
		WHERE topic_id = $1
		ORDER BY deadline, id
	`

	rows, err := s.db.QueryContext(ctx, query, topic.ID)
	if err != nil {
		return err
	}
	defer closeRows(ctx, rows, s.logger)

	for rows.Next() {
		assignment := &domain.Assignment{}
		var title, description string

		if err := rows.Scan(&assignment.ID, &title, &description, &assignment.Deadline); err != nil {
			return err
		}
		assignment.Title = domain.AssignmentTitle(title)
		assignment.Description = domain.AssignmentDescription(description)
		topic.Assignments = append(topic.Assignments, assignment)
	}
	return rows.Err()
}

func (s *PostgresCourseStore) loadResources(ctx context.Context, topic *domain.Topic) error {
	query := `
		SELECT id, title, url
		FROM resources
		WHERE topic_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, topic.ID)
	if err != nil {
		return err
	}
	defer closeRows(ctx, rows, s.logger)

	for rows.Next() {
		resource := &domain.LearningResource{}
		var title, url string

		if err := rows.Scan(&resource.ID, &title, &url); err != nil {
			return err
		}
		resource.Title = domain.ResourceTitle(title)
		resource.URL = domain.ResourceURL(url)
		topic.Resources = append(topic.Resources, resource)
	}
	return rows.Err()
}

// ListPublished implements store.CourseStore.ListPublished
// It returns published course rows without their nested children, newest
// first. Returns an empty slice when none are published.
func (s *PostgresCourseStore) ListPublished(ctx context.Context) ([]*domain.Course, error) {
	return s.listCourses(ctx, `
		SELECT id, tutor_id, title, description, duration_weeks,
		       start_date, end_date, target_audience, status,
		       created_at, updated_at
		FROM courses
		WHERE status = $1
		ORDER BY created_at DESC
	`, string(domain.CourseStatusPublished))
}

// ListByTutor implements store.CourseStore.ListByTutor
// It returns all of a tutor's course rows without their nested children,
// newest first.
func (s *PostgresCourseStore) ListByTutor(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error) {
	return s.listCourses(ctx, `
		SELECT id, tutor_id, title, description, duration_weeks,
		       start_date, end_date, target_audience, status,
		       created_at, updated_at
		FROM courses
		WHERE tutor_id = $1
		ORDER BY created_at DESC
	`, tutorID)
}

func (s *PostgresCourseStore) listCourses(ctx context.Context, query string, args ...any) ([]*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query courses", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(ctx, rows, s.logger)

	var courses []*domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			log.Error("failed to scan course row", slog.String("error", err.Error()))
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning course rows", slog.String("error", err.Error()))
		return nil, err
	}

	if courses == nil {
		courses = []*domain.Course{}
	}
	return courses, nil
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var course domain.Course
	var title, description, audience, status string
	var duration int

	err := row.Scan(
		&course.ID,
		&course.TutorID,
		&title,
		&description,
		&duration,
		&course.Dates.Start,
		&course.Dates.End,
		&audience,
		&status,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	course.Title = domain.CourseTitle(title)
	course.Description = domain.CourseDescription(description)
	course.Duration = domain.DurationWeeks(duration)
	course.TargetAudience = domain.TargetAudience(audience)
	course.Status = domain.CourseStatus(status)
	return &course, nil
}

func closeRows(ctx context.Context, rows *sql.Rows, fallback *slog.Logger) {
	if err := rows.Close(); err != nil {
		logger.FromContextOrDefault(ctx, fallback).Error("failed to close rows",
			slog.String("error", err.Error()))
	}
}
