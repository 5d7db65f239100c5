package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
)

// getUserIDFromContext extracts the authenticated user's ID from the request
// context. The authentication middleware places it there.
func getUserIDFromContext(r *http.Request) (domain.UserID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(domain.UserID)
	if !ok || userID.IsNil() {
		return domain.UserID{}, false
	}
	return userID, true
}

// requireUserID extracts the authenticated user's ID or writes a 403 if the
// context carries none. Returns false when the response was already written.
func requireUserID(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, service.ErrUnauthorized, "User identity missing from request")
		return domain.UserID{}, false
	}
	return userID, true
}

// getPathUUID extracts a UUID path parameter, handling missing and malformed
// values.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.ErrInvalidID
	}
	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing a 400 response on failure. Returns false when the
// response was already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}
