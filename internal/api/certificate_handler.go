package api

import (
	"net/http"

	"github.com/ExaltAI/lms-demo/internal/api/shared"
	"github.com/ExaltAI/lms-demo/internal/domain"
	"github.com/ExaltAI/lms-demo/internal/service"
)

// CertificateHandler handles certificate API requests.
type CertificateHandler struct {
	certificateService service.CertificateService
}

// NewCertificateHandler creates a new CertificateHandler with the given dependencies.
func NewCertificateHandler(certificateService service.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
	}
}

// Issue handles POST /certificates.
func (h *CertificateHandler) Issue(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req IssueCertificateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	enrollmentID, err := domain.ParseEnrollmentID(req.EnrollmentID)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid enrollment ID")
		return
	}

	certificate, err := h.certificateService.IssueCertificate(r.Context(), tutorID, enrollmentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toCertificateResponse(certificate))
}

// Revoke handles POST /certificates/{id}/revoke.
func (h *CertificateHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	certificateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid certificate ID")
		return
	}

	certificate, err := h.certificateService.RevokeCertificate(r.Context(), tutorID, domain.CertificateID{UUID: certificateID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCertificateResponse(certificate))
}

// GetCertificate handles GET /certificates/{id}.
func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	certificateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "Invalid certificate ID")
		return
	}

	certificate, err := h.certificateService.GetCertificate(r.Context(), actorID, domain.CertificateID{UUID: certificateID})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCertificateResponse(certificate))
}

// ListMine handles GET /certificates/mine.
func (h *CertificateHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	studentID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	certificates, err := h.certificateService.ListStudentCertificates(r.Context(), studentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]CertificateResponse, 0, len(certificates))
	for _, certificate := range certificates {
		out = append(out, toCertificateResponse(certificate))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
