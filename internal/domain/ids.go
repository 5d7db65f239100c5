package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Typed identifiers, one per entity kind. Each embeds uuid.UUID so the
// standard Scan/Value/MarshalText behavior is inherited, while the distinct
// types keep cross-aggregate references from being mixed up at compile time.

// UserID identifies a User.
type UserID struct{ uuid.UUID }

// CourseID identifies a Course aggregate.
type CourseID struct{ uuid.UUID }

// TopicID identifies a Topic within a Course.
type TopicID struct{ uuid.UUID }

// AssignmentID identifies an Assignment within a Topic.
type AssignmentID struct{ uuid.UUID }

// ResourceID identifies a LearningResource within a Topic.
type ResourceID struct{ uuid.UUID }

// EnrollmentID identifies an Enrollment aggregate.
type EnrollmentID struct{ uuid.UUID }

// SubmissionID identifies a Submission within an Enrollment.
type SubmissionID struct{ uuid.UUID }

// CertificateID identifies a Certificate aggregate.
type CertificateID struct{ uuid.UUID }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID{uuid.New()} }

// NewCourseID returns a fresh random CourseID.
func NewCourseID() CourseID { return CourseID{uuid.New()} }

// NewTopicID returns a fresh random TopicID.
func NewTopicID() TopicID { return TopicID{uuid.New()} }

// NewAssignmentID returns a fresh random AssignmentID.
func NewAssignmentID() AssignmentID { return AssignmentID{uuid.New()} }

// NewResourceID returns a fresh random ResourceID.
func NewResourceID() ResourceID { return ResourceID{uuid.New()} }

// NewEnrollmentID returns a fresh random EnrollmentID.
func NewEnrollmentID() EnrollmentID { return EnrollmentID{uuid.New()} }

// NewSubmissionID returns a fresh random SubmissionID.
func NewSubmissionID() SubmissionID { return SubmissionID{uuid.New()} }

// NewCertificateID returns a fresh random CertificateID.
func NewCertificateID() CertificateID { return CertificateID{uuid.New()} }

// IsNil reports whether the id is the zero UUID.
func (id UserID) IsNil() bool        { return id.UUID == uuid.Nil }
func (id CourseID) IsNil() bool      { return id.UUID == uuid.Nil }
func (id TopicID) IsNil() bool       { return id.UUID == uuid.Nil }
func (id AssignmentID) IsNil() bool  { return id.UUID == uuid.Nil }
func (id ResourceID) IsNil() bool    { return id.UUID == uuid.Nil }
func (id EnrollmentID) IsNil() bool  { return id.UUID == uuid.Nil }
func (id SubmissionID) IsNil() bool  { return id.UUID == uuid.Nil }
func (id CertificateID) IsNil() bool { return id.UUID == uuid.Nil }

func parseID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return u, nil
}

// ParseUserID parses a UserID from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := parseID(s)
	return UserID{u}, err
}

// ParseCourseID parses a CourseID from its string form.
func ParseCourseID(s string) (CourseID, error) {
	u, err := parseID(s)
	return CourseID{u}, err
}

// ParseTopicID parses a TopicID from its string form.
func ParseTopicID(s string) (TopicID, error) {
	u, err := parseID(s)
	return TopicID{u}, err
}

// ParseAssignmentID parses an AssignmentID from its string form.
func ParseAssignmentID(s string) (AssignmentID, error) {
	u, err := parseID(s)
	return AssignmentID{u}, err
}

// ParseEnrollmentID parses an EnrollmentID from its string form.
func ParseEnrollmentID(s string) (EnrollmentID, error) {
	u, err := parseID(s)
	return EnrollmentID{u}, err
}

// ParseCertificateID parses a CertificateID from its string form.
func ParseCertificateID(s string) (CertificateID, error) {
	u, err := parseID(s)
	return CertificateID{u}, err
}
