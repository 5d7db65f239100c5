package domain

import (
	"fmt"
	"sort"
	"time"
)

// CourseStatus represents the lifecycle state of a course.
type CourseStatus string

// Course lifecycle. Transitions are one-directional:
// DRAFT -> PUBLISHED -> ARCHIVED, with no un-publish.
const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
	CourseStatusArchived  CourseStatus = "archived"
)

// Course business-rule errors
var (
	ErrCourseNotDraft     = fmt.Errorf("%w: course is not in draft status", ErrInvalidOperation)
	ErrCourseNotPublished = fmt.Errorf("%w: course is not published", ErrInvalidOperation)
	ErrCourseNoTopics     = fmt.Errorf("%w: cannot publish a course without topics", ErrInvalidOperation)
	ErrTopicNoResources   = fmt.Errorf("%w: every topic must have at least one resource before publishing", ErrInvalidOperation)
)

// LearningResource is a supplementary material attached to a Topic.
// It has no back-reference to its topic; ownership is structural.
type LearningResource struct {
	ID    ResourceID    `json:"id"`
	Title ResourceTitle `json:"title"`
	URL   ResourceURL   `json:"url"`
}

// Assignment is a graded task attached to a Topic.
type Assignment struct {
	ID          AssignmentID          `json:"id"`
	Title       AssignmentTitle       `json:"title"`
	Description AssignmentDescription `json:"description"`
	Deadline    time.Time             `json:"deadline"`
}

// IsPastDeadline reports whether the assignment deadline has passed.
func (a *Assignment) IsPastDeadline() bool {
	return time.Now().UTC().After(a.Deadline)
}

// Topic is a unit of course content. It owns its assignments and resources;
// the parent Course assigns its order at append time.
type Topic struct {
	ID          TopicID             `json:"id"`
	Title       TopicTitle          `json:"title"`
	Description TopicDescription    `json:"description"`
	Order       int                 `json:"order"`
	Assignments []*Assignment       `json:"assignments"`
	Resources   []*LearningResource `json:"resources"`
}

// AddAssignment creates an assignment with a fresh ID, appends it to the
// topic and returns it.
func (t *Topic) AddAssignment(title AssignmentTitle, description AssignmentDescription, deadline time.Time) *Assignment {
	assignment := &Assignment{
		ID:          NewAssignmentID(),
		Title:       title,
		Description: description,
		Deadline:    deadline.UTC(),
	}
	t.Assignments = append(t.Assignments, assignment)
	return assignment
}

// AddResource creates a learning resource with a fresh ID, appends it to the
// topic and returns it.
func (t *Topic) AddResource(title ResourceTitle, url ResourceURL) *LearningResource {
	resource := &LearningResource{
		ID:    NewResourceID(),
		Title: title,
		URL:   url,
	}
	t.Resources = append(t.Resources, resource)
	return resource
}

// Course is the aggregate root for course content. It exclusively owns its
// Topics, which own their Assignments and LearningResources. References to
// other aggregates (the owning tutor) are ids, never pointers.
type Course struct {
	ID             CourseID          `json:"id"`
	Title          CourseTitle       `json:"title"`
	Description    CourseDescription `json:"description"`
	TutorID        UserID            `json:"tutor_id"`
	Duration       DurationWeeks     `json:"duration_weeks"`
	Dates          DateRange         `json:"dates"`
	TargetAudience TargetAudience    `json:"target_audience"`
	Status         CourseStatus      `json:"status"`
	Topics         []*Topic          `json:"topics"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewCourse creates a DRAFT course with a fresh ID and no topics.
// All value-object arguments are assumed to be already validated by their
// constructors; NewCourse validates the remaining invariants.
func NewCourse(
	title CourseTitle,
	description CourseDescription,
	tutorID UserID,
	duration DurationWeeks,
	dates DateRange,
	audience TargetAudience,
) (*Course, error) {
	if tutorID.IsNil() {
		return nil, fmt.Errorf("%w: course tutor ID cannot be empty", ErrValidation)
	}

	now := time.Now().UTC()
	return &Course{
		ID:             NewCourseID(),
		Title:          title,
		Description:    description,
		TutorID:        tutorID,
		Duration:       duration,
		Dates:          dates,
		TargetAudience: audience,
		Status:         CourseStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// AddTopic appends a topic with the next dense 1-based order value.
// Topics may only be added while the course is in draft.
func (c *Course) AddTopic(title TopicTitle, description TopicDescription) (*Topic, error) {
	if c.Status != CourseStatusDraft {
		return nil, ErrCourseNotDraft
	}

	topic := &Topic{
		ID:          NewTopicID(),
		Title:       title,
		Description: description,
		Order:       len(c.Topics) + 1,
	}
	c.Topics = append(c.Topics, topic)
	c.UpdatedAt = time.Now().UTC()
	return topic, nil
}

// FindTopic returns the topic with the given id, or nil if it is not part of
// this course.
func (c *Course) FindTopic(id TopicID) *Topic {
	for _, topic := range c.Topics {
		if topic.ID == id {
			return topic
		}
	}
	return nil
}

// OrderedTopics returns a copy of the topic list sorted by order.
// Orders are dense and unique, so the sort is deterministic.
func (c *Course) OrderedTopics() []*Topic {
	topics := make([]*Topic, len(c.Topics))
	copy(topics, c.Topics)
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Order < topics[j].Order
	})
	return topics
}

// AllAssignments returns every assignment across all topics, in topic order.
func (c *Course) AllAssignments() []*Assignment {
	var assignments []*Assignment
	for _, topic := range c.OrderedTopics() {
		assignments = append(assignments, topic.Assignments...)
	}
	return assignments
}

// Publish transitions the course from DRAFT to PUBLISHED.
// The course must have at least one topic and every topic must carry at
// least one learning resource.
func (c *Course) Publish() error {
	if c.Status != CourseStatusDraft {
		return ErrCourseNotDraft
	}

	if len(c.Topics) == 0 {
		return ErrCourseNoTopics
	}

	for _, topic := range c.Topics {
		if len(topic.Resources) == 0 {
			return fmt.Errorf("%w: topic %q", ErrTopicNoResources, topic.Title)
		}
	}

	c.Status = CourseStatusPublished
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Archive transitions the course from PUBLISHED to ARCHIVED.
func (c *Course) Archive() error {
	if c.Status != CourseStatusPublished {
		return ErrCourseNotPublished
	}

	c.Status = CourseStatusArchived
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAvailableForEnrollment reports whether students may enroll: the course
// must be published and its end date still in the future.
func (c *Course) IsAvailableForEnrollment() bool {
	return c.Status == CourseStatusPublished && time.Now().UTC().Before(c.Dates.End)
}
