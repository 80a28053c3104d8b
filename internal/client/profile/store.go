package profile

import (
	"context"
	"sync"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

// Store is the CRUD facade over the caller's profile resource and its
// child collections. Every mutation re-fetches the whole profile
// afterwards, so local state is always the server's canonical version
// and never a client-side merge.
//
// Error reporting is deliberately doubled on mutations: the message is
// recorded on Err for inline display AND the failure is returned, so a
// multi-step view can both show the message and abort.
type Store struct {
	mu  sync.Mutex
	api *clientapi.Client

	data    *models.Profile
	loading bool
	saving  bool
	err     string
}

// New creates a profile store over the shared API client.
func New(apiClient *clientapi.Client) *Store {
	return &Store{api: apiClient}
}

// FetchOwnProfile loads the caller's profile. A backend null (no
// profile saved yet) is normalized into a well-formed empty profile, so
// views never see an absent value. Failures are recorded on Err and
// swallowed; error state here is independent from other stores.
func (s *Store) FetchOwnProfile(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if err := s.fetch(ctx); err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to load profile"))
	}
}

// fetch replaces local data with the backend's current profile.
func (s *Store) fetch(ctx context.Context) error {
	data, err := s.api.MyProfile(ctx)
	if err != nil {
		return err
	}

	if data == nil {
		data = models.EmptyProfile()
	} else {
		data.Normalize()
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// SaveProfile upserts the profile and replaces local data with the
// server's canonical response. Returns whether the save succeeded;
// on failure the message is available on Err. No error is returned so
// views can branch without exception handling.
func (s *Store) SaveProfile(ctx context.Context, req api.UpsertProfileRequest) bool {
	s.mu.Lock()
	s.saving = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.saving = false
		s.mu.Unlock()
	}()

	data, err := s.api.SaveProfile(ctx, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to save profile"))
		return false
	}

	data.Normalize()
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return true
}

// AddHighlight creates a highlight, then re-fetches the profile to
// re-synchronize the collections.
func (s *Store) AddHighlight(ctx context.Context, req api.CreateHighlightRequest) (*models.Highlight, error) {
	s.recordErr("")

	highlight, err := s.api.CreateHighlight(ctx, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to add highlight"))
		return nil, err
	}

	s.refetch(ctx)
	return highlight, nil
}

// UpdateHighlight updates a highlight by id, then re-fetches the profile.
func (s *Store) UpdateHighlight(ctx context.Context, id int64, req api.UpdateHighlightRequest) (*models.Highlight, error) {
	s.recordErr("")

	highlight, err := s.api.UpdateHighlight(ctx, id, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to update highlight"))
		return nil, err
	}

	s.refetch(ctx)
	return highlight, nil
}

// DeleteHighlight removes a highlight by id, then re-fetches the profile.
func (s *Store) DeleteHighlight(ctx context.Context, id int64) error {
	s.recordErr("")

	if err := s.api.DeleteHighlight(ctx, id); err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to delete highlight"))
		return err
	}

	s.refetch(ctx)
	return nil
}

// AddEvidence attaches an evidence record, then re-fetches the profile.
func (s *Store) AddEvidence(ctx context.Context, req api.CreateEvidenceRequest) (*models.Evidence, error) {
	s.recordErr("")

	evidence, err := s.api.CreateEvidence(ctx, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to add evidence"))
		return nil, err
	}

	s.refetch(ctx)
	return evidence, nil
}

// UpdateEvidence updates an evidence record by id, then re-fetches the
// profile.
func (s *Store) UpdateEvidence(ctx context.Context, id int64, req api.UpdateEvidenceRequest) (*models.Evidence, error) {
	s.recordErr("")

	evidence, err := s.api.UpdateEvidence(ctx, id, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to update evidence"))
		return nil, err
	}

	s.refetch(ctx)
	return evidence, nil
}

// DeleteEvidence removes an evidence record by id, then re-fetches the
// profile.
func (s *Store) DeleteEvidence(ctx context.Context, id int64) error {
	s.recordErr("")

	if err := s.api.DeleteEvidence(ctx, id); err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to delete evidence"))
		return err
	}

	s.refetch(ctx)
	return nil
}

// refetch re-synchronizes after a successful mutation. The mutation
// already succeeded, so a failed re-fetch only records the message.
func (s *Store) refetch(ctx context.Context) {
	if err := s.fetch(ctx); err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "failed to reload profile"))
	}
}

// Profile returns the current profile data, or nil before the first
// fetch.
func (s *Store) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Highlights returns the current highlight collection.
func (s *Store) Highlights() []models.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return []models.Highlight{}
	}
	return s.data.Highlights
}

// Evidence returns the current evidence collection.
func (s *Store) Evidence() []models.Evidence {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return []models.Evidence{}
	}
	return s.data.Evidence
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Saving reports whether an upsert is in flight.
func (s *Store) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving
}

// Err returns the last recorded error message for display.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) recordErr(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
