package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service/auth"
	"github.com/ExaltAI/lms-demo/internal/store"
)

// UserService provides user registration, authentication and lookup.
type UserService interface {
	// Register creates a new user with the given email, display name, role
	// and plaintext password. The password is hashed before storage.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error)

	// Authenticate verifies the email and password pair and returns the
	// matching user. Returns ErrInvalidCredentials when either is wrong; it
	// does not reveal which.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	// Returns store.ErrUserNotFound if no such user exists.
	GetUser(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new user with the specified email, name, role and password.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, name string,
	role domain.Role,
	password string,
) (*domain.User, error) {
	emailAddr, err := domain.NewEmailAddress(email)
	if err != nil {
		return nil, err
	}

	if password == "" {
		return nil, domain.ErrUserPasswordMissing
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(emailAddr, name, role, hashed)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Save(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
			return nil, err
		}
		s.logger.Error("failed to save user",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"role", string(user.Role))
	return user, nil
}

// Authenticate verifies the email and password pair.
// A missing user and a wrong password produce the same error so callers
// cannot probe which emails are registered.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	emailAddr, err := domain.NewEmailAddress(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userStore.GetByEmail(ctx, string(emailAddr))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email", "error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user authenticated successfully", "user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
			return nil, err
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
