package domain

import (
	"fmt"
	"time"
)

// CertificateStatus represents the validity state of a certificate.
type CertificateStatus string

// Certificate lifecycle. Revocation is one-directional.
const (
	CertificateStatusIssued  CertificateStatus = "issued"
	CertificateStatusRevoked CertificateStatus = "revoked"
)

// ErrCertificateRevoked is returned when revoking a certificate that is not
// in the issued state.
var ErrCertificateRevoked = fmt.Errorf("%w: only issued certificates can be revoked", ErrInvalidOperation)

// Certificate is the aggregate root recording course completion. At most one
// certificate exists per enrollment. Certificates are created only through
// the certificate service's eligibility workflow, never directly by the API
// layer.
type Certificate struct {
	ID           CertificateID     `json:"id"`
	StudentID    UserID            `json:"student_id"`
	CourseID     CourseID          `json:"course_id"`
	EnrollmentID EnrollmentID      `json:"enrollment_id"`
	IssuedAt     time.Time         `json:"issued_at"`
	Status       CertificateStatus `json:"status"`
}

// NewCertificate creates an ISSUED certificate with a fresh ID and the
// current UTC time.
func NewCertificate(studentID UserID, courseID CourseID, enrollmentID EnrollmentID) (*Certificate, error) {
	if studentID.IsNil() {
		return nil, fmt.Errorf("%w: certificate student ID cannot be empty", ErrValidation)
	}
	if courseID.IsNil() {
		return nil, fmt.Errorf("%w: certificate course ID cannot be empty", ErrValidation)
	}
	if enrollmentID.IsNil() {
		return nil, fmt.Errorf("%w: certificate enrollment ID cannot be empty", ErrValidation)
	}

	return &Certificate{
		ID:           NewCertificateID(),
		StudentID:    studentID,
		CourseID:     courseID,
		EnrollmentID: enrollmentID,
		IssuedAt:     time.Now().UTC(),
		Status:       CertificateStatusIssued,
	}, nil
}

// Revoke transitions the certificate from ISSUED to REVOKED.
func (c *Certificate) Revoke() error {
	if c.Status != CertificateStatusIssued {
		return ErrCertificateRevoked
	}
	c.Status = CertificateStatusRevoked
	return nil
}

// IsValid reports whether the certificate is still issued.
func (c *Certificate) IsValid() bool {
	return c.Status == CertificateStatusIssued
}
