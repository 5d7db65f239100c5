package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
	"github.com/ExaltAI/lms-demo/internal/store"
)

func testCertificate(t *testing.T, studentID domain.UserID) *domain.Certificate {
	t.Helper()
	certificate, err := domain.NewCertificate(studentID, domain.NewCourseID(), domain.NewEnrollmentID())
	require.NoError(t, err)
	return certificate
}

func TestCertificateHandler_Issue(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	student := testStudent(t)
	certificate := testCertificate(t, student.ID)

	t.Run("issued", func(t *testing.T) {
		t.Parallel()

		certificateService := new(mockCertificateService)
		certificateService.On("IssueCertificate", mock.Anything, tutor.ID, certificate.EnrollmentID).
			Return(certificate, nil)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/certificates", IssueCertificateRequest{
			EnrollmentID: certificate.EnrollmentID.String(),
		}), tutor.ID)
		handler.Issue(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeBody[CertificateResponse](t, recorder)
		assert.Equal(t, certificate.ID, resp.ID)
		assert.Equal(t, "issued", resp.Status)
	})

	t.Run("requirements not met", func(t *testing.T) {
		t.Parallel()

		certificateService := new(mockCertificateService)
		certificateService.On("IssueCertificate", mock.Anything, tutor.ID, certificate.EnrollmentID).
			Return(nil, service.ErrRequirementsNotMet)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/certificates", IssueCertificateRequest{
			EnrollmentID: certificate.EnrollmentID.String(),
		}), tutor.ID)
		handler.Issue(recorder, req)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("already issued", func(t *testing.T) {
		t.Parallel()

		certificateService := new(mockCertificateService)
		certificateService.On("IssueCertificate", mock.Anything, tutor.ID, certificate.EnrollmentID).
			Return(nil, service.ErrAlreadyIssued)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/certificates", IssueCertificateRequest{
			EnrollmentID: certificate.EnrollmentID.String(),
		}), tutor.ID)
		handler.Issue(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("malformed enrollment id", func(t *testing.T) {
		t.Parallel()

		handler := NewCertificateHandler(new(mockCertificateService))

		recorder := httptest.NewRecorder()
		req := asUser(newJSONRequest(t, "POST", "/api/certificates", IssueCertificateRequest{
			EnrollmentID: "not-a-uuid",
		}), tutor.ID)
		handler.Issue(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCertificateHandler_Revoke(t *testing.T) {
	t.Parallel()

	tutor := testTutor(t)
	student := testStudent(t)

	t.Run("revoked", func(t *testing.T) {
		t.Parallel()

		certificate := testCertificate(t, student.ID)
		require.NoError(t, certificate.Revoke())

		certificateService := new(mockCertificateService)
		certificateService.On("RevokeCertificate", mock.Anything, tutor.ID, certificate.ID).
			Return(certificate, nil)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/certificates/"+certificate.ID.String()+"/revoke", nil)
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": certificate.ID.String()})
		handler.Revoke(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeBody[CertificateResponse](t, recorder)
		assert.Equal(t, "revoked", resp.Status)
	})

	t.Run("already revoked", func(t *testing.T) {
		t.Parallel()

		certificate := testCertificate(t, student.ID)

		certificateService := new(mockCertificateService)
		certificateService.On("RevokeCertificate", mock.Anything, tutor.ID, certificate.ID).
			Return(nil, domain.ErrCertificateRevoked)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := newJSONRequest(t, "POST", "/api/certificates/"+certificate.ID.String()+"/revoke", nil)
		req = asUser(req, tutor.ID)
		req = withPathParams(req, map[string]string{"id": certificate.ID.String()})
		handler.Revoke(recorder, req)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestCertificateHandler_GetCertificate(t *testing.T) {
	t.Parallel()

	student := testStudent(t)
	certificate := testCertificate(t, student.ID)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		certificateService := new(mockCertificateService)
		certificateService.On("GetCertificate", mock.Anything, student.ID, certificate.ID).
			Return(certificate, nil)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/certificates/"+certificate.ID.String(), nil)
		req = asUser(req, student.ID)
		req = withPathParams(req, map[string]string{"id": certificate.ID.String()})
		handler.GetCertificate(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		resp := decodeBody[CertificateResponse](t, recorder)
		assert.Equal(t, certificate.ID, resp.ID)
		assert.Equal(t, student.ID, resp.StudentID)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		unknownID := domain.NewCertificateID()

		certificateService := new(mockCertificateService)
		certificateService.On("GetCertificate", mock.Anything, student.ID, unknownID).
			Return(nil, store.ErrCertificateNotFound)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/certificates/"+unknownID.String(), nil)
		req = asUser(req, student.ID)
		req = withPathParams(req, map[string]string{"id": unknownID.String()})
		handler.GetCertificate(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		t.Parallel()

		stranger := domain.NewUserID()

		certificateService := new(mockCertificateService)
		certificateService.On("GetCertificate", mock.Anything, stranger, certificate.ID).
			Return(nil, service.ErrUnauthorized)

		handler := NewCertificateHandler(certificateService)

		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/certificates/"+certificate.ID.String(), nil)
		req = asUser(req, stranger)
		req = withPathParams(req, map[string]string{"id": certificate.ID.String()})
		handler.GetCertificate(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestCertificateHandler_ListMine(t *testing.T) {
	t.Parallel()

	student := testStudent(t)
	certificate := testCertificate(t, student.ID)

	certificateService := new(mockCertificateService)
	certificateService.On("ListStudentCertificates", mock.Anything, student.ID).
		Return([]*domain.Certificate{certificate}, nil)

	handler := NewCertificateHandler(certificateService)

	recorder := httptest.NewRecorder()
	req := asUser(httptest.NewRequest("GET", "/api/certificates/mine", nil), student.ID)
	handler.ListMine(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeBody[[]CertificateResponse](t, recorder)
	require.Len(t, resp, 1)
	assert.Equal(t, certificate.ID, resp[0].ID)
}
