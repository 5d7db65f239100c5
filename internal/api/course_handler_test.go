package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
	"github.com/ExaltAI/lms-demo/internal/store"
)

func TestCourseHandler_CreateCourse(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	course := testCourse(t, tutor.ID)

	validPayload := func() map[string]interface{} {
		start := time.Now().UTC().AddDate(0, 0, 7)
		return map[string]interface{}{
			"title":           "Practical Go Services",
			"description":     "HTTP services, storage layers, and deployment.",
			"duration_weeks":  12,
			"start_date":      start.Format(time.RFC3339),
			"end_date":        start.AddDate(0, 6, 0).Format(time.RFC3339),
			"target_audience": "Backend engineers",
		}
	}

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		courseService := new(mockCourseService)
		courseService.On("CreateCourse", mock.Anything, tutor.ID, mock.Anything).Return(course, nil)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/courses", validPayload()), tutor.ID)
		handler.CreateCourse(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeBody[CourseResponse](t, recorder)
		assert.Equal(t, course.ID, resp.ID)
		assert.Equal(t, "draft", resp.Status)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		t.Parallel()

		courseService := new(mockCourseService)
		courseService.On("CreateCourse", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrNotTutor)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/courses", validPayload()), domain.NewUserID())
		handler.CreateCourse(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		handler := NewCourseHandler(new(mockCourseService))

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/courses", map[string]interface{}{
			"title": "Missing everything else",
		}), domain.NewUserID())
		handler.CreateCourse(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		handler := NewCourseHandler(new(mockCourseService))

		recorder := httptest.NewRecorder()
		handler.CreateCourse(recorder, newJSONRequest(t, "POST", "/api/courses", validPayload()))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestCourseHandler_AddTopic(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	course := testCourse(t, tutor.ID)
	topic, err := course.AddTopic("HTTP handlers", "Routing, middleware, JSON.")
	require.NoError(t, err)

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		courseService := new(mockCourseService)
		courseService.On("AddTopic", mock.Anything, tutor.ID, course.ID, service.AddTopicInput{
			Title:       "HTTP handlers",
			Description: "Routing, middleware, JSON.",
		}).Return(topic, nil)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/courses/"+course.ID.String()+"/topics", map[string]interface{}{
			"title":       "HTTP handlers",
			"description": "Routing, middleware, JSON.",
		})
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": course.ID.String()})
		handler.AddTopic(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeBody[TopicResponse](t, recorder)
		assert.Equal(t, topic.ID, resp.ID)
		assert.Equal(t, 1, resp.Order)
	})

	t.Run("malformed course id", func(t *testing.T) {
		t.Parallel()

		handler := NewCourseHandler(new(mockCourseService))

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/courses/nope/topics", map[string]interface{}{
			"title":       "HTTP handlers",
			"description": "Routing, middleware, JSON.",
		})
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": "nope"})
		handler.AddTopic(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCourseHandler_Publish(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)

	t.Run("published", func(t *testing.T) {
		t.Parallel()

		course := testCourse(t, tutor.ID)
		topic, err := course.AddTopic("HTTP handlers", "Routing, middleware, JSON.")
		require.NoError(t, err)
		topic.AddResource("Effective Go", "https://go.dev/doc/effective_go")
		require.NoError(t, course.Publish())

		courseService := new(mockCourseService)
		courseService.On("Publish", mock.Anything, tutor.ID, course.ID).Return(course, nil)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/courses/"+course.ID.String()+"/publish", nil)
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": course.ID.String()})
		handler.Publish(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeBody[CourseResponse](t, recorder)
		assert.Equal(t, "published", resp.Status)
	})

	t.Run("empty course cannot publish", func(t *testing.T) {
		t.Parallel()

		course := testCourse(t, tutor.ID)

		courseService := new(mockCourseService)
		courseService.On("Publish", mock.Anything, tutor.ID, course.ID).
			Return(nil, domain.ErrCourseNoTopics)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/courses/"+course.ID.String()+"/publish", nil)
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": course.ID.String()})
		handler.Publish(recorder, req)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestCourseHandler_GetCourse(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	course := testCourse(t, tutor.ID)
	topic, err := course.AddTopic("HTTP handlers", "Routing, middleware, JSON.")
	require.NoError(t, err)
	topic.AddResource("Effective Go", "https://go.dev/doc/effective_go")

	t.Run("found with topics", func(t *testing.T) {
		t.Parallel()

		courseService := new(mockCourseService)
		courseService.On("GetCourse", mock.Anything, course.ID).Return(course, nil)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/courses/"+course.ID.String(), nil)
		req = withPathParams(req, map[string]string{"id": course.ID.String()})
		handler.GetCourse(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeBody[CourseResponse](t, recorder)
		require.Len(t, resp.Topics, 1)
		assert.Len(t, resp.Topics[0].Resources, 1)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		unknownID := domain.NewCourseID()

		courseService := new(mockCourseService)
		courseService.On("GetCourse", mock.Anything, unknownID).Return(nil, store.ErrCourseNotFound)

		handler := NewCourseHandler(courseService)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/courses/"+unknownID.String(), nil)
		req = withPathParams(req, map[string]string{"id": unknownID.String()})
		handler.GetCourse(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestCourseHandler_ListPublished(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	course := testCourse(t, tutor.ID)

	courseService := new(mockCourseService)
	courseService.On("ListPublishedCourses", mock.Anything).Return([]*domain.Course{course}, nil)

	handler := NewCourseHandler(courseService)

	recorder := httptest.NewRecorder()
	handler.ListPublished(recorder, httptest.NewRequest("GET", "/api/courses", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeBody[[]CourseResponse](t, recorder)
	require.Len(t, resp, 1)
	// List endpoints return bare course rows.
	assert.Empty(t, resp[0].Topics)
}
