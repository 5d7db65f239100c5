package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ExaltAI/lms-demo/internal/config"
	"github.com/ExaltAI/lms-demo/internal/platform/postgres"
	"github.com/ExaltAI/lms-demo/internal/service"
	"github.com/ExaltAI/lms-demo/internal/service/auth"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	userService        service.UserService
	courseService      service.CourseService
	enrollmentService  service.EnrollmentService
	evaluationService  service.EvaluationService
	certificateService service.CertificateService
}

// newApplication wires the store, service and auth dependencies from the
// loaded configuration.
func newApplication(cfg *config.Config) (*application, error) {
	appLogger := slog.Default()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	courseStore := postgres.NewPostgresCourseStore(db, appLogger)
	enrollmentStore := postgres.NewPostgresEnrollmentStore(db, appLogger)
	certificateStore := postgres.NewPostgresCertificateStore(db, appLogger)

	return &application{
		config:     cfg,
		logger:     appLogger,
		db:         db,
		jwtService: jwtService,

		userService: service.NewUserService(userStore, hasher, hasher, db, appLogger),
		courseService: service.NewCourseService(
			userStore, courseStore, db, appLogger),
		enrollmentService: service.NewEnrollmentService(
			userStore, courseStore, enrollmentStore, db, appLogger),
		evaluationService: service.NewEvaluationService(
			userStore, courseStore, enrollmentStore, db, appLogger),
		certificateService: service.NewCertificateService(
			userStore, courseStore, enrollmentStore, certificateStore, db, appLogger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
