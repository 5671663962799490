package dto

import (
	"errors"
	"fmt"
)

// SubmitApplicationRequest represents an incoming application submission.
// Proofs maps proof names to server-side file paths produced by the upload
// layer, which is outside this service.
type SubmitApplicationRequest struct {
	UserID       int64             `json:"user_id" binding:"required"`
	FirstName    string            `json:"first_name" binding:"required"`
	LastName     string            `json:"last_name" binding:"required"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	DOB          string            `json:"dob"`
	DocumentType string            `json:"document_type" binding:"required"`
	Proofs       map[string]string `json:"proofs"`
	Agreement    bool              `json:"agreement"`
}

// Validate performs basic validation on the request
func (r *SubmitApplicationRequest) Validate() error {
	if r.DocumentType == "" {
		return errors.New("document_type is required")
	}
	if !r.Agreement {
		return errors.New("agreement must be accepted")
	}
	return nil
}

// UpdateStatusRequest represents an admin status transition.
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" binding:"required"`
	By     string            `json:"by"`
	Note   string            `json:"note"`
}

// Validate restricts transitions to the admin-reachable states.
func (r *UpdateStatusRequest) Validate() error {
	switch r.Status {
	case StatusApproved, StatusRejected:
		return nil
	default:
		return fmt.Errorf("status must be %s or %s", StatusApproved, StatusRejected)
	}
}

// VerifyRequest optionally carries a free-text query that is forwarded to the
// AI cross-check only; it never affects the deterministic verdict.
type VerifyRequest struct {
	Query string `json:"query"`
}
