package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/client/storage"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/internal/validation"
	"github.com/docport/portal/pkg/api"
)

// ErrLoginInFlight is returned when Login is called while a previous
// call is still pending. The loading flag is a guard, not a queue:
// the second caller is rejected instead of being serialized.
var ErrLoginInFlight = errors.New("login already in progress")

// Store holds the current session: the bearer credential and the cached
// user record, mirrored into persisted storage. IsAuthenticated is
// derived from the credential alone; a token without a cached user is a
// valid transient state awaiting hydration.
type Store struct {
	mu      sync.Mutex
	api     *clientapi.Client
	storage storage.SessionStorage

	token   string
	user    *models.User
	loading bool
	err     string
}

// Compile-time check that Store can feed credentials to the HTTP client
var _ clientapi.TokenSource = (*Store)(nil)

// New creates a session store over the shared API client and the
// persisted session storage.
func New(apiClient *clientapi.Client, sessionStorage storage.SessionStorage) *Store {
	return &Store{
		api:     apiClient,
		storage: sessionStorage,
	}
}

// Restore loads the persisted credential and user into memory. Called
// once at startup, before any navigation. Missing entries are not an
// error; anything else is reported so startup can surface it.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.storage.Token(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	user, err := s.storage.User(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// HydrateFromStorage confirms a restored credential against the
// backend. Without a credential it is a no-op. On success the cached
// user is replaced and persisted; on any failure the session is torn
// down silently. Safe to call repeatedly, never fails past its
// boundary.
func (s *Store) HydrateFromStorage(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		slog.Debug("session hydration failed, logging out", "error", err)
		s.Logout(ctx, true)
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		slog.Warn("failed to persist hydrated user", "error", err)
	}
}

// Login authenticates the user. The username is normalized before the
// request; on success credential and user become observable atomically
// and both are persisted. On failure the session is torn down silently
// and the error is returned for the view to display.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	username = validation.NormalizeUsername(username)
	if err := validation.ValidateUsername(username); err != nil {
		s.recordErr(err.Error())
		return err
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		s.Logout(ctx, true)
		s.recordErr(clientapi.ErrorMessage(err, "login failed"))
		return err
	}

	user := resp.User
	s.mu.Lock()
	s.token = resp.AccessToken
	s.user = &user
	s.mu.Unlock()

	if err := s.storage.SaveToken(ctx, resp.AccessToken); err != nil {
		slog.Warn("failed to persist token", "error", err)
	}
	if err := s.storage.SaveUser(ctx, &user); err != nil {
		slog.Warn("failed to persist user", "error", err)
	}

	return nil
}

// Register creates a new account and returns the server's confirmation
// message. It does not authenticate the caller; a separate Login is
// required afterwards.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (string, error) {
	req.Username = validation.NormalizeUsername(req.Username)
	if err := validation.ValidateUsername(req.Username); err != nil {
		s.recordErr(err.Error())
		return "", err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		s.recordErr(err.Error())
		return "", err
	}

	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.recordErr(clientapi.ErrorMessage(err, "registration failed"))
		return "", err
	}

	s.recordErr("")
	return resp.Message, nil
}

// FetchMe refreshes the cached user from the backend. Without a
// credential it returns nil without calling out.
func (s *Store) FetchMe(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return nil, nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		slog.Warn("failed to persist user", "error", err)
	}
	return user, nil
}

// Logout clears credential, user and persisted storage unconditionally.
// When silent, no navigation follows; otherwise navigating away is the
// caller's responsibility, so unrelated in-memory state survives.
func (s *Store) Logout(ctx context.Context, silent bool) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}

	if !silent {
		slog.Debug("logged out")
	}
}

// IsAuthenticated is derived, never stored: true iff a credential is
// present in memory. A loaded user is deliberately not required, so a
// restored session counts as authenticated while hydration is pending.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current credential ("" when unauthenticated).
// Part of the api.TokenSource contract.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Invalidate tears the session down silently. Called by the HTTP client
// on 401 responses. Racing an explicit Logout is harmless: both clear
// the same state.
func (s *Store) Invalidate() {
	s.Logout(context.Background(), true)
}

// User returns the cached user record, or nil while none is loaded.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Role returns the cached user's role, or "" while no user is loaded.
func (s *Store) Role() models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Loading reports whether a login is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
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
