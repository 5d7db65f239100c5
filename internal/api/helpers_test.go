package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
)

// newJSONRequest builds a request with a JSON body.
func newJSONRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser attaches an authenticated user ID to the request context, the way
// the authentication middleware does.
func asUser(r *http.Request, userID domain.UserID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// withPathParams attaches chi URL parameters to the request context, so
// handlers can be exercised without a full router.
func withPathParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
	return out
}

func testStudent(t *testing.T) *domain.User {
	t.Helper()
	student, err := domain.NewUser("student@example.com", "Student", domain.RoleStudent, "hashedpassword")
	require.NoError(t, err)
	return student
}

func testTutor(t *testing.T) *domain.User {
	t.Helper()
	tutor, err := domain.NewUser("tutor@example.com", "Tutor", domain.RoleTutor, "hashedpassword")
	require.NoError(t, err)
	return tutor
}

func testCourse(t *testing.T, tutorID domain.UserID) *domain.Course {
	t.Helper()

	start := time.Now().UTC().AddDate(0, 0, 7)
	dates, err := domain.NewDateRange(start, start.AddDate(0, 6, 0))
	require.NoError(t, err)

	course, err := domain.NewCourse(
		"Practical Go Services",
		"HTTP services, storage layers, and deployment.",
		tutorID,
		12,
		dates,
		"Backend engineers",
	)
	require.NoError(t, err)
	return course
}
