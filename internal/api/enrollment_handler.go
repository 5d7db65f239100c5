package api

import (
	"net/http"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
)

// EnrollmentHandler handles enrollment and submission API requests.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
	evaluationService service.EvaluationService
}

// NewEnrollmentHandler creates a new EnrollmentHandler with the given dependencies.
func NewEnrollmentHandler(
	enrollmentService service.EnrollmentService,
	evaluationService service.EvaluationService,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
		evaluationService: evaluationService,
	}
}

// Enroll handles POST /enrollments.
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	studentID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req EnrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	courseID, err := domain.ParseCourseID(req.CourseID)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}

	enrollment, err := h.enrollmentService.EnrollStudent(r.Context(), studentID, courseID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toEnrollmentResponse(enrollment))
}

// ListMine handles GET /enrollments/mine.
func (h *EnrollmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	studentID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListStudentEnrollments(r.Context(), studentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, toEnrollmentResponse(enrollment))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetEnrollment handles GET /enrollments/{id}.
func (h *EnrollmentHandler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	enrollmentID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid enrollment ID")
		return
	}

	enrollment, err := h.enrollmentService.GetEnrollment(r.Context(), actorID, domain.EnrollmentID{UUID: enrollmentID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toEnrollmentResponse(enrollment))
}

// ListForCourse handles GET /courses/{id}/enrollments for the owning tutor.
func (h *EnrollmentHandler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}

	enrollments, err := h.enrollmentService.ListCourseEnrollments(r.Context(), tutorID, domain.CourseID{UUID: courseID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		out = append(out, toEnrollmentResponse(enrollment))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// SubmitAssignment handles POST /enrollments/{id}/submissions.
func (h *EnrollmentHandler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	studentID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	enrollmentID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid enrollment ID")
		return
	}

	var req SubmitAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignmentID, err := domain.ParseAssignmentID(req.AssignmentID)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid assignment ID")
		return
	}

	submission, err := h.enrollmentService.SubmitAssignment(
		r.Context(),
		studentID,
		domain.EnrollmentID{UUID: enrollmentID},
		assignmentID,
		req.Content,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toSubmissionResponse(submission))
}

// EvaluateSubmission handles POST /enrollments/{id}/submissions/{assignmentID}/evaluate.
func (h *EnrollmentHandler) EvaluateSubmission(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	enrollmentID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid enrollment ID")
		return
	}
	assignmentID, err := getPathUUID(r, "assignmentID")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid assignment ID")
		return
	}

	var req EvaluateSubmissionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	submission, err := h.evaluationService.EvaluateSubmission(
		r.Context(),
		tutorID,
		domain.EnrollmentID{UUID: enrollmentID},
		domain.AssignmentID{UUID: assignmentID},
		req.Grade,
		req.Feedback,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toSubmissionResponse(submission))
}
