package api

import "github.com/docport/portal/internal/models"

// UpsertProfileRequest creates or updates the caller's profile.
// The operation is keyed by the authenticated identity, not by id.
type UpsertProfileRequest struct {
	Summary           string          `json:"summary,omitempty"`
	PreferredModality models.Modality `json:"preferredModality,omitempty"`
}

// CreateHighlightRequest adds a highlight to the caller's profile.
type CreateHighlightRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	EvidenceURL string `json:"evidenceUrl,omitempty"`
}

// UpdateHighlightRequest is a partial update; nil fields are left
// untouched by the backend.
type UpdateHighlightRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	EvidenceURL *string `json:"evidenceUrl,omitempty"`
}

// CreateEvidenceRequest attaches an evidence record to the caller's
// profile. ContentHash is the hex-encoded SHA-256 of the referenced
// file, asserted by the client and verified server-side.
type CreateEvidenceRequest struct {
	Type        models.EvidenceType `json:"type"`
	Name        string              `json:"name"`
	URL         string              `json:"url"`
	ContentHash string              `json:"contentHash"`
	IssueDate   string              `json:"issueDate,omitempty"`  // YYYY-MM-DD
	ExpiryDate  string              `json:"expiryDate,omitempty"` // YYYY-MM-DD
	Note        string              `json:"note,omitempty"`
}

// UpdateEvidenceRequest is a partial update; nil fields are left
// untouched by the backend.
type UpdateEvidenceRequest struct {
	Type        *models.EvidenceType `json:"type,omitempty"`
	Name        *string              `json:"name,omitempty"`
	URL         *string              `json:"url,omitempty"`
	ContentHash *string              `json:"contentHash,omitempty"`
	IssueDate   *string              `json:"issueDate,omitempty"`
	ExpiryDate  *string              `json:"expiryDate,omitempty"`
	Note        *string              `json:"note,omitempty"`
}
