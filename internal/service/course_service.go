package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// CreateCourseInput carries the raw fields for creating a course. Values are
// validated by the domain constructors.
type CreateCourseInput struct {
	Title          string
	Description    string
	DurationWeeks  int
	StartDate      time.Time
	EndDate        time.Time
	TargetAudience string
}

// AddTopicInput carries the raw fields for adding a topic to a course.
type AddTopicInput struct {
	Title       string
	Description string
}

// AddAssignmentInput carries the raw fields for adding an assignment to a
// topic.
type AddAssignmentInput struct {
	Title       string
	Description string
	Deadline    time.Time
}

// AddResourceInput carries the raw fields for adding a learning resource to
// a topic.
type AddResourceInput struct {
	Title string
	URL   string
}

// CourseService provides course authoring and catalogue operations. All
// mutating operations require the acting user to be the tutor who owns the
// course.
type CourseService interface {
	// CreateCourse creates a new draft course owned by the tutor.
	// Returns ErrNotTutor if the acting user cannot create courses.
	CreateCourse(ctx context.Context, tutorID domain.UserID, input CreateCourseInput) (*domain.Course, error)

	// AddTopic appends a topic to a draft course.
	AddTopic(ctx context.Context, tutorID domain.UserID, courseID domain.CourseID, input AddTopicInput) (*domain.Topic, error)

	// AddAssignment adds an assignment to a topic of a draft course.
	AddAssignment(
		ctx context.Context,
		tutorID domain.UserID,
		courseID domain.CourseID,
		topicID domain.TopicID,
		input AddAssignmentInput,
	) (*domain.Assignment, error)

	// AddResource adds a learning resource to a topic of a draft course.
	AddResource(
		ctx context.Context,
		tutorID domain.UserID,
		courseID domain.CourseID,
		topicID domain.TopicID,
		input AddResourceInput,
	) (*domain.LearningResource, error)

	// Publish transitions a draft course to published, making it visible to
	// students. The course must have at least one topic and every topic
	// must carry at least one learning resource.
	Publish(ctx context.Context, tutorID domain.UserID, courseID domain.CourseID) (*domain.Course, error)

	// Archive transitions a published course to archived, closing it to new
	// enrollments.
	Archive(ctx context.Context, tutorID domain.UserID, courseID domain.CourseID) (*domain.Course, error)

	// GetCourse retrieves a course with its full topic tree.
	// Returns store.ErrCourseNotFound if no such course exists.
	GetCourse(ctx context.Context, courseID domain.CourseID) (*domain.Course, error)

	// ListPublishedCourses returns the catalogue of published courses,
	// newest first, without their topic trees.
	ListPublishedCourses(ctx context.Context) ([]*domain.Course, error)

	// ListTutorCourses returns all courses owned by the tutor, in any
	// status, newest first, without their topic trees.
	ListTutorCourses(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error)
}

// CourseServiceImpl implements the CourseService interface
type CourseServiceImpl struct {
	userStore   store.UserStore
	courseStore store.CourseStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	userStore store.UserStore,
	courseStore store.CourseStore,
	db *sql.DB,
	logger *slog.Logger,
) CourseService {
	return &CourseServiceImpl{
		userStore:   userStore,
		courseStore: courseStore,
		db:          db,
		logger:      logger.With("component", "course_service"),
	}
}

// CreateCourse creates a new draft course owned by the tutor.
func (s *CourseServiceImpl) CreateCourse(
	ctx context.Context,
	tutorID domain.UserID,
	input CreateCourseInput,
) (*domain.Course, error) {
	tutor, err := s.userStore.GetByID(ctx, tutorID)
	if err != nil {
		return nil, s.wrapLookupError(err, "tutor", tutorID.String())
	}
	if !tutor.CanCreateCourse() {
		s.logger.Debug("non-tutor attempted to create course", "user_id", tutorID)
		return nil, ErrNotTutor
	}

	title, err := domain.NewCourseTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.NewCourseDescription(input.Description)
	if err != nil {
		return nil, err
	}
	duration, err := domain.NewDurationWeeks(input.DurationWeeks)
	if err != nil {
		return nil, err
	}
	dates, err := domain.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	audience, err := domain.NewTargetAudience(input.TargetAudience)
	if err != nil {
		return nil, err
	}

	course, err := domain.NewCourse(title, description, tutorID, duration, dates, audience)
	if err != nil {
		return nil, err
	}

	if err := s.saveCourse(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created successfully",
		"course_id", course.ID,
		"tutor_id", tutorID)
	return course, nil
}

// AddTopic appends a topic to a draft course owned by the tutor.
func (s *CourseServiceImpl) AddTopic(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	input AddTopicInput,
) (*domain.Topic, error) {
	title, err := domain.NewTopicTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.NewTopicDescription(input.Description)
	if err != nil {
		return nil, err
	}

	var topic *domain.Topic
	err = s.mutateOwnedCourse(ctx, tutorID, courseID, func(course *domain.Course) error {
		t, err := course.AddTopic(title, description)
		if err != nil {
			return err
		}
		topic = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic added to course",
		"course_id", courseID,
		"topic_id", topic.ID)
	return topic, nil
}

// AddAssignment adds an assignment to a topic of a draft course owned by the
// tutor.
func (s *CourseServiceImpl) AddAssignment(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	topicID domain.TopicID,
	input AddAssignmentInput,
) (*domain.Assignment, error) {
	title, err := domain.NewAssignmentTitle(input.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.NewAssignmentDescription(input.Description)
	if err != nil {
		return nil, err
	}

	var assignment *domain.Assignment
	err = s.mutateOwnedCourse(ctx, tutorID, courseID, func(course *domain.Course) error {
		if course.Status != domain.CourseStatusDraft {
			return domain.ErrCourseNotDraft
		}
		topic := course.FindTopic(topicID)
		if topic == nil {
			return fmt.Errorf("%w: topic %s not found in course", store.ErrNotFound, topicID)
		}
		assignment = topic.AddAssignment(title, description, input.Deadline.UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("assignment added to topic",
		"course_id", courseID,
		"topic_id", topicID,
		"assignment_id", assignment.ID)
	return assignment, nil
}

// AddResource adds a learning resource to a topic of a draft course owned by
// the tutor.
func (s *CourseServiceImpl) AddResource(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	topicID domain.TopicID,
	input AddResourceInput,
) (*domain.LearningResource, error) {
	title, err := domain.NewResourceTitle(input.Title)
	if err != nil {
		return nil, err
	}
	url, err := domain.NewResourceURL(input.URL)
	if err != nil {
		return nil, err
	}

	var resource *domain.LearningResource
	err = s.mutateOwnedCourse(ctx, tutorID, courseID, func(course *domain.Course) error {
		if course.Status != domain.CourseStatusDraft {
			return domain.ErrCourseNotDraft
		}
		topic := course.FindTopic(topicID)
		if topic == nil {
			return fmt.Errorf("%w: topic %s not found in course", store.ErrNotFound, topicID)
		}
		resource = topic.AddResource(title, url)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource added to topic",
		"course_id", courseID,
		"topic_id", topicID,
		"resource_id", resource.ID)
	return resource, nil
}

// Publish transitions a draft course to published.
func (s *CourseServiceImpl) Publish(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) (*domain.Course, error) {
	var published *domain.Course
	err := s.mutateOwnedCourse(ctx, tutorID, courseID, func(course *domain.Course) error {
		if err := course.Publish(); err != nil {
			return err
		}
		published = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course published", "course_id", courseID)
	return published, nil
}

// Archive transitions a published course to archived.
func (s *CourseServiceImpl) Archive(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
) (*domain.Course, error) {
	var archived *domain.Course
	err := s.mutateOwnedCourse(ctx, tutorID, courseID, func(course *domain.Course) error {
		if err := course.Archive(); err != nil {
			return err
		}
		archived = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course archived", "course_id", courseID)
	return archived, nil
}

// GetCourse retrieves a course with its full topic tree.
func (s *CourseServiceImpl) GetCourse(ctx context.Context, courseID domain.CourseID) (*domain.Course, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, s.wrapLookupError(err, "course", courseID.String())
	}
	return course, nil
}

// ListPublishedCourses returns the catalogue of published courses.
func (s *CourseServiceImpl) ListPublishedCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseStore.ListPublished(ctx)
	if err != nil {
		s.logger.Error("failed to list published courses", "error", err)
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}
	return courses, nil
}

// ListTutorCourses returns all courses owned by the tutor.
func (s *CourseServiceImpl) ListTutorCourses(ctx context.Context, tutorID domain.UserID) ([]*domain.Course, error) {
	courses, err := s.courseStore.ListByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("failed to list tutor courses",
			"error", err,
			"tutor_id", tutorID)
		return nil, fmt.Errorf("failed to list tutor courses: %w", err)
	}
	return courses, nil
}

// mutateOwnedCourse loads the course inside a transaction, checks ownership,
// applies fn and saves the result.
func (s *CourseServiceImpl) mutateOwnedCourse(
	ctx context.Context,
	tutorID domain.UserID,
	courseID domain.CourseID,
	fn func(course *domain.Course) error,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.courseStore.WithTx(tx)

		course, err := txStore.GetByID(ctx, courseID)
		if err != nil {
			return s.wrapLookupError(err, "course", courseID.String())
		}
		if course.TutorID != tutorID {
			s.logger.Debug("tutor attempted to modify another tutor's course",
				"course_id", courseID,
				"tutor_id", tutorID,
				"owner_id", course.TutorID)
			return ErrNotCourseOwner
		}

		if err := fn(course); err != nil {
			return err
		}

		if err := txStore.Save(ctx, course); err != nil {
			s.logger.Error("failed to save course",
				"error", err,
				"course_id", courseID)
			return fmt.Errorf("failed to save course: %w", err)
		}
		return nil
	})
}

func (s *CourseServiceImpl) saveCourse(ctx context.Context, course *domain.Course) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.courseStore.WithTx(tx).Save(ctx, course)
	})
	if err != nil {
		s.logger.Error("failed to save course",
			"error", err,
			"course_id", course.ID)
		return fmt.Errorf("failed to save course: %w", err)
	}
	return nil
}

func (s *CourseServiceImpl) wrapLookupError(err error, entity, id string) error {
	if store.IsNotFoundError(err) {
		s.logger.Debug(entity+" not found", "id", id)
		return err
	}
	s.logger.Error("failed to retrieve "+entity,
		"error", err,
		"id", id)
	return fmt.Errorf("failed to retrieve %s: %w", entity, err)
}
