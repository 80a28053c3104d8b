package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

// Profile endpoint paths. The backend exposes the profile resource
// under its original Spanish route names.
const (
	pathMyProfile  = "/perfil/mi-perfil"
	pathHighlights = "/perfil/mi-perfil/destacados"
	pathEvidence   = "/perfil/mi-perfil/evidencias"
)

// MyProfile fetches the caller's profile. The backend returns a JSON
// null for users that never saved one; in that case the returned
// pointer is nil and the caller normalizes.
func (c *Client) MyProfile(ctx context.Context) (*models.Profile, error) {
	var profile *models.Profile
	if err := c.doRequest(ctx, http.MethodGet, pathMyProfile, nil, &profile); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return profile, nil
}

// SaveProfile creates or updates the caller's profile (upsert) and
// returns the server's canonical version.
func (c *Client) SaveProfile(ctx context.Context, req api.UpsertProfileRequest) (*models.Profile, error) {
	var profile models.Profile
	if err := c.doRequest(ctx, http.MethodPost, pathMyProfile, req, &profile); err != nil {
		return nil, fmt.Errorf("save profile request failed: %w", err)
	}
	return &profile, nil
}

// CreateHighlight adds a highlight to the caller's profile.
func (c *Client) CreateHighlight(ctx context.Context, req api.CreateHighlightRequest) (*models.Highlight, error) {
	var highlight models.Highlight
	if err := c.doRequest(ctx, http.MethodPost, pathHighlights, req, &highlight); err != nil {
		return nil, fmt.Errorf("create highlight request failed: %w", err)
	}
	return &highlight, nil
}

// UpdateHighlight partially updates a highlight by id.
func (c *Client) UpdateHighlight(ctx context.Context, id int64, req api.UpdateHighlightRequest) (*models.Highlight, error) {
	var highlight models.Highlight
	path := fmt.Sprintf("%s/%d", pathHighlights, id)
	if err := c.doRequest(ctx, http.MethodPatch, path, req, &highlight); err != nil {
		return nil, fmt.Errorf("update highlight request failed: %w", err)
	}
	return &highlight, nil
}

// DeleteHighlight removes a highlight by id.
func (c *Client) DeleteHighlight(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", pathHighlights, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete highlight request failed: %w", err)
	}
	return nil
}

// CreateEvidence attaches an evidence record to the caller's profile.
func (c *Client) CreateEvidence(ctx context.Context, req api.CreateEvidenceRequest) (*models.Evidence, error) {
	var evidence models.Evidence
	if err := c.doRequest(ctx, http.MethodPost, pathEvidence, req, &evidence); err != nil {
		return nil, fmt.Errorf("create evidence request failed: %w", err)
	}
	return &evidence, nil
}

// UpdateEvidence partially updates an evidence record by id.
func (c *Client) UpdateEvidence(ctx context.Context, id int64, req api.UpdateEvidenceRequest) (*models.Evidence, error) {
	var evidence models.Evidence
	path := fmt.Sprintf("%s/%d", pathEvidence, id)
	if err := c.doRequest(ctx, http.MethodPatch, path, req, &evidence); err != nil {
		return nil, fmt.Errorf("update evidence request failed: %w", err)
	}
	return &evidence, nil
}

// DeleteEvidence removes an evidence record by id.
func (c *Client) DeleteEvidence(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", pathEvidence, id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete evidence request failed: %w", err)
	}
	return nil
}
