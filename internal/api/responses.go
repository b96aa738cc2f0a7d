package api

import (
	"github.com/openseva/grievance/internal/domain"
)

// SubmitComplaintRequest is the JSON body for a complaint submission.
// Multipart submissions carry the same fields as form values plus an
// optional "image" file part.
type SubmitComplaintRequest struct {
	Name          string `form:"name"           json:"name"           binding:"required"`
	Email         string `form:"email"          json:"email"          binding:"required,email"`
	ComplaintText string `form:"complaint_text" json:"complaint_text" binding:"required"`
	Location      string `form:"location"       json:"location"`
}

// SubmitComplaintResponse returns the stored complaint along with the
// duplicate decision made at submission time.
type SubmitComplaintResponse struct {
	Complaint *domain.Complaint     `json:"complaint"`
	Duplicate domain.DuplicateCheck `json:"duplicate"`
}

// ComplaintListResponse is a paginated complaint listing.
type ComplaintListResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

// UpdateStatusRequest is the body for a status transition.
type UpdateStatusRequest struct {
	Status domain.Status `json:"status" binding:"required"`
}

// AnalyzeRequest asks for a classification of a complaint text without
// storing anything.
type AnalyzeRequest struct {
	Text     string `json:"text" binding:"required"`
	HasImage bool   `json:"has_image"`
}

// CheckDuplicateRequest asks whether a draft complaint duplicates one of
// the submitter's recent complaints.
type CheckDuplicateRequest struct {
	Text     string          `json:"text"  binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Category domain.Category `json:"category"`
	Location string          `json:"location"`
}

// RegisterRequest creates a portal account.
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates a portal account.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns a signed token and the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
