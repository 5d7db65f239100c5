package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Value object validation errors. Each wraps ErrValidation so callers can
// classify them with errors.Is without matching the specific rule.
var (
	ErrEmailInvalid           = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrCourseTitleLength      = fmt.Errorf("%w: course title must be 3-100 characters", ErrValidation)
	ErrCourseDescriptionShort = fmt.Errorf("%w: course description must be at least 10 characters", ErrValidation)
	ErrTopicTitleShort        = fmt.Errorf("%w: topic title must be at least 3 characters", ErrValidation)
	ErrTopicDescriptionEmpty  = fmt.Errorf("%w: topic description cannot be empty", ErrValidation)
	ErrAssignmentTitleShort   = fmt.Errorf("%w: assignment title must be at least 3 characters", ErrValidation)
	ErrAssignmentDescEmpty    = fmt.Errorf("%w: assignment description cannot be empty", ErrValidation)
	ErrResourceTitleEmpty     = fmt.Errorf("%w: resource title cannot be empty", ErrValidation)
	ErrResourceURLScheme      = fmt.Errorf("%w: resource URL must start with http:// or https://", ErrValidation)
	ErrDurationRange          = fmt.Errorf("%w: duration must be between 1 and 52 weeks", ErrValidation)
	ErrDateRangeOrder         = fmt.Errorf("%w: end date must be after start date", ErrValidation)
	ErrTargetAudienceEmpty    = fmt.Errorf("%w: target audience cannot be empty", ErrValidation)
	ErrGradeRange             = fmt.Errorf("%w: grade must be between 0 and 100", ErrValidation)
	ErrFeedbackEmpty          = fmt.Errorf("%w: feedback cannot be empty", ErrValidation)
)

// Conservative RFC-light email pattern. Deliberately stricter than RFC 5322;
// addresses that pass it are unambiguous.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmailAddress is a validated email address.
type EmailAddress string

// NewEmailAddress validates and returns an EmailAddress.
func NewEmailAddress(s string) (EmailAddress, error) {
	if !emailPattern.MatchString(s) {
		return "", ErrEmailInvalid
	}
	return EmailAddress(s), nil
}

// CourseTitle is a course title of 3-100 characters.
type CourseTitle string

// NewCourseTitle validates and returns a CourseTitle.
func NewCourseTitle(s string) (CourseTitle, error) {
	if len(strings.TrimSpace(s)) < 3 || len(s) > 100 {
		return "", ErrCourseTitleLength
	}
	return CourseTitle(s), nil
}

// CourseDescription is a course description of at least 10 characters.
type CourseDescription string

// NewCourseDescription validates and returns a CourseDescription.
func NewCourseDescription(s string) (CourseDescription, error) {
	if len(strings.TrimSpace(s)) < 10 {
		return "", ErrCourseDescriptionShort
	}
	return CourseDescription(s), nil
}

// TopicTitle is a topic title of at least 3 characters.
type TopicTitle string

// NewTopicTitle validates and returns a TopicTitle.
func NewTopicTitle(s string) (TopicTitle, error) {
	if len(strings.TrimSpace(s)) < 3 {
		return "", ErrTopicTitleShort
	}
	return TopicTitle(s), nil
}

// TopicDescription is a non-empty topic description.
type TopicDescription string

// NewTopicDescription validates and returns a TopicDescription.
func NewTopicDescription(s string) (TopicDescription, error) {
	if s == "" {
		return "", ErrTopicDescriptionEmpty
	}
	return TopicDescription(s), nil
}

// AssignmentTitle is an assignment title of at least 3 characters.
type AssignmentTitle string

// NewAssignmentTitle validates and returns an AssignmentTitle.
func NewAssignmentTitle(s string) (AssignmentTitle, error) {
	if len(strings.TrimSpace(s)) < 3 {
		return "", ErrAssignmentTitleShort
	}
	return AssignmentTitle(s), nil
}

// AssignmentDescription is a non-empty assignment description.
type AssignmentDescription string

// NewAssignmentDescription validates and returns an AssignmentDescription.
func NewAssignmentDescription(s string) (AssignmentDescription, error) {
	if s == "" {
		return "", ErrAssignmentDescEmpty
	}
	return AssignmentDescription(s), nil
}

// ResourceTitle is a non-empty learning resource title.
type ResourceTitle string

// NewResourceTitle validates and returns a ResourceTitle.
func NewResourceTitle(s string) (ResourceTitle, error) {
	if s == "" {
		return "", ErrResourceTitleEmpty
	}
	return ResourceTitle(s), nil
}

// ResourceURL is a learning resource URL with an http(s) scheme.
type ResourceURL string

// NewResourceURL validates and returns a ResourceURL.
func NewResourceURL(s string) (ResourceURL, error) {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "", ErrResourceURLScheme
	}
	return ResourceURL(s), nil
}

// DurationWeeks is a course duration between 1 and 52 weeks.
type DurationWeeks int

// NewDurationWeeks validates and returns a DurationWeeks.
func NewDurationWeeks(weeks int) (DurationWeeks, error) {
	if weeks < 1 || weeks > 52 {
		return 0, ErrDurationRange
	}
	return DurationWeeks(weeks), nil
}

// DateRange is a start/end pair where the end is strictly after the start.
// Both timestamps are stored in UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange validates and returns a DateRange.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !end.After(start) {
		return DateRange{}, ErrDateRangeOrder
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// TargetAudience is a non-empty course audience description.
type TargetAudience string

// NewTargetAudience validates and returns a TargetAudience.
func NewTargetAudience(s string) (TargetAudience, error) {
	if s == "" {
		return "", ErrTargetAudienceEmpty
	}
	return TargetAudience(s), nil
}

// Grade is an integer score between 0 and 100 inclusive.
type Grade int

// NewGrade validates and returns a Grade.
func NewGrade(n int) (Grade, error) {
	if n < 0 || n > 100 {
		return 0, ErrGradeRange
	}
	return Grade(n), nil
}

// Feedback is non-empty evaluation feedback text.
type Feedback string

// NewFeedback validates and returns a Feedback.
func NewFeedback(s string) (Feedback, error) {
	if s == "" {
		return "", ErrFeedbackEmpty
	}
	return Feedback(s), nil
}
