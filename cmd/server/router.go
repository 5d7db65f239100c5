package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ExaltAI/lms-demo/internal/api"
	apiMiddleware "github.com/ExaltAI/lms-demo/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	courseHandler := api.NewCourseHandler(app.courseService)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService, app.evaluationService)
	certificateHandler := api.NewCertificateHandler(app.certificateService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Public catalogue
		r.Get("/courses", courseHandler.ListPublished)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/me", authHandler.Me)

			// Course authoring (tutor)
			r.Post("/courses", courseHandler.CreateCourse)
			r.Get("/courses/mine", courseHandler.ListMine)
			r.Post("/courses/{id}/topics", courseHandler.AddTopic)
			r.Post("/courses/{id}/topics/{topicID}/assignments", courseHandler.AddAssignment)
			r.Post("/courses/{id}/topics/{topicID}/resources", courseHandler.AddResource)
			r.Post("/courses/{id}/publish", courseHandler.Publish)
			r.Post("/courses/{id}/archive", courseHandler.Archive)
			r.Get("/courses/{id}/enrollments", enrollmentHandler.ListForCourse)

			// Enrollment and submissions (student)
			r.Post("/enrollments", enrollmentHandler.Enroll)
			r.Get("/enrollments/mine", enrollmentHandler.ListMine)
			r.Get("/enrollments/{id}", enrollmentHandler.GetEnrollment)
			r.Post("/enrollments/{id}/submissions", enrollmentHandler.SubmitAssignment)
			r.Post("/enrollments/{id}/submissions/{assignmentID}/evaluate", enrollmentHandler.EvaluateSubmission)

			// Certificates
			r.Post("/certificates", certificateHandler.Issue)
			r.Get("/certificates/mine", certificateHandler.ListMine)
			r.Get("/certificates/{id}", certificateHandler.GetCertificate)
			r.Post("/certificates/{id}/revoke", certificateHandler.Revoke)
		})

		// Single course follows the catalogue, registered last so that
		// /courses/mine wins over the {id} pattern.
		r.Get("/courses/{id}", courseHandler.GetCourse)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
