package api

import (
	"context"
	"net/http"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
)

// CourseHandler handles course authoring and catalogue API requests.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// CreateCourse handles POST /courses.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), tutorID, service.CreateCourseInput{
		Title:          req.Title,
		Description:    req.Description,
		DurationWeeks:  req.DurationWeeks,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TargetAudience: req.TargetAudience,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toCourseResponse(course, true))
}

// AddTopic handles POST /courses/{id}/topics.
func (h *CourseHandler) AddTopic(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}

	var req AddTopicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	topic, err := h.courseService.AddTopic(r.Context(), tutorID, domain.CourseID{UUID: courseID}, service.AddTopicInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTopicResponse(topic))
}

// AddAssignment handles POST /courses/{id}/topics/{topicID}/assignments.
func (h *CourseHandler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}
	topicID, err := getPathUUID(r, "topicID")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid topic ID")
		return
	}

	var req AddAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.courseService.AddAssignment(
		r.Context(),
		tutorID,
		domain.CourseID{UUID: courseID},
		domain.TopicID{UUID: topicID},
		service.AddAssignmentInput{
			Title:       req.Title,
			Description: req.Description,
			Deadline:    req.Deadline,
		},
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toAssignmentResponse(assignment))
}

// AddResource handles POST /courses/{id}/topics/{topicID}/resources.
func (h *CourseHandler) AddResource(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}
	topicID, err := getPathUUID(r, "topicID")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid topic ID")
		return
	}

	var req AddResourceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resource, err := h.courseService.AddResource(
		r.Context(),
		tutorID,
		domain.CourseID{UUID: courseID},
		domain.TopicID{UUID: topicID},
		service.AddResourceInput{
			Title: req.Title,
			URL:   req.URL,
		},
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ResourceResponse{
		ID:    resource.ID,
		Title: string(resource.Title),
		URL:   string(resource.URL),
	})
}

// Publish handles POST /courses/{id}/publish.
func (h *CourseHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.courseService.Publish)
}

// Archive handles POST /courses/{id}/archive.
func (h *CourseHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.courseService.Archive)
}

func (h *CourseHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, tutorID domain.UserID, courseID domain.CourseID) (*domain.Course, error),
) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}

	course, err := fn(r.Context(), tutorID, domain.CourseID{UUID: courseID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCourseResponse(course, true))
}

// GetCourse handles GET /courses/{id}.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid course ID")
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), domain.CourseID{UUID: courseID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCourseResponse(course, true))
}

// ListPublished handles GET /courses, the public catalogue.
func (h *CourseHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListPublishedCourses(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCourseList(courses))
}

// ListMine handles GET /courses/mine, the tutor's own courses.
func (h *CourseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courses, err := h.courseService.ListTutorCourses(r.Context(), tutorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCourseList(courses))
}

func toCourseList(courses []*domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResponse(course, false))
	}
	return out
}
