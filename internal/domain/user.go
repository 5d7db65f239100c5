package domain

import (
	"fmt"
	"time"
)

// Role determines what a user may do in the system.
type Role string

// Possible user roles. A user's role is fixed at creation.
const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// User validation errors
var (
	ErrUserIDEmpty         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrUserNameEmpty       = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrUserRoleInvalid     = fmt.Errorf("%w: user role must be student or tutor", ErrValidation)
	ErrUserPasswordMissing = fmt.Errorf("%w: user must have a hashed password", ErrValidation)
)

// User represents a registered user of the LMS.
// Role is immutable after creation; the capability predicates below are the
// only role checks the rest of the domain performs.
type User struct {
	ID             UserID       `json:"id"`
	Email          EmailAddress `json:"email"`
	Name           string       `json:"name"`
	Role           Role         `json:"role"`
	HashedPassword string       `json:"-"` // never expose the hash
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewUser creates a new User with a fresh ID and UTC timestamps.
// The caller provides an already-hashed password.
// Returns an error if validation fails.
func NewUser(email EmailAddress, name string, role Role, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             NewUserID(),
		Email:          email,
		Name:           name,
		Role:           role,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID.IsNil() {
		return ErrUserIDEmpty
	}

	if _, err := NewEmailAddress(string(u.Email)); err != nil {
		return err
	}

	if u.Name == "" {
		return ErrUserNameEmpty
	}

	if u.Role != RoleStudent && u.Role != RoleTutor {
		return ErrUserRoleInvalid
	}

	if u.HashedPassword == "" {
		return ErrUserPasswordMissing
	}

	return nil
}

// CanCreateCourse reports whether this user may author courses.
func (u *User) CanCreateCourse() bool {
	return u.Role == RoleTutor
}

// CanEnrollInCourse reports whether this user may enroll in courses.
func (u *User) CanEnrollInCourse() bool {
	return u.Role == RoleStudent
}
