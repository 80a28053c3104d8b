package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docport/portal/pkg/api"
)

// tokenSourceMock implements TokenSource for testing
type tokenSourceMock struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (m *tokenSourceMock) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *tokenSourceMock) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.invalidated++
}

func (m *tokenSourceMock) invalidations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

// navigatorMock implements Navigator for testing. Like the real router,
// redirecting to login is a no-op when already on an auth view.
type navigatorMock struct {
	mu             sync.Mutex
	atAuthView     bool
	loginRedirects []string
	forbiddenCalls int
}

func (m *navigatorMock) RedirectToLogin(from string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.atAuthView {
		return
	}
	m.atAuthView = true
	m.loginRedirects = append(m.loginRedirects, from)
}

func (m *navigatorMock) RedirectToForbidden() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forbiddenCalls++
}

func (m *navigatorMock) AtAuthView() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.atAuthView
}

func (m *navigatorMock) logins() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loginRedirects...)
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:3000/api/")

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:3000/api", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_AttachesBearer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "alice", "role": "ADMIN"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(&tokenSourceMock{token: "t1"})

	_, err := client.Me(context.Background())
	require.NoError(t, err)
}

// TestClient_StripsBearerPrefix verifies a credential persisted with a
// stray "Bearer " prefix is not doubled on the wire.
func TestClient_StripsBearerPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "alice", "role": "ADMIN"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(&tokenSourceMock{token: "Bearer t1"})

	_, err := client.Me(context.Background())
	require.NoError(t, err)
}

// TestClient_NoBearerOnPublicPaths verifies the auth endpoints never
// carry a credential even when one is cached.
func TestClient_NoBearerOnPublicPaths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.LoginResponse{AccessToken: "t2"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.SetTokenSource(&tokenSourceMock{token: "stale"})

	_, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		responseBody   interface{}
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name:           "validation failure with message",
			statusCode:     http.StatusUnprocessableEntity,
			responseBody:   api.ErrorResponse{Message: "summary too long"},
			expectedErrMsg: "server error (422): summary too long",
		},
		{
			name:           "error field only",
			statusCode:     http.StatusConflict,
			responseBody:   api.ErrorResponse{Error: "username taken"},
			expectedErrMsg: "server error (409): username taken",
		},
		{
			name:           "plain body",
			statusCode:     http.StatusInternalServerError,
			responseBody:   "Internal Server Error",
			expectedErrMsg: "server error (500): Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if errResp, ok := tt.responseBody.(api.ErrorResponse); ok {
					_ = json.NewEncoder(w).Encode(errResp)
				} else {
					_, _ = w.Write([]byte(tt.responseBody.(string)))
				}
			}))
			defer server.Close()

			client := NewClient(server.URL)

			_, err := client.MyProfile(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
		})
	}
}

// TestClient_UnauthorizedInvalidatesAndRedirects covers the 401 policy:
// the session is invalidated, login is redirected to once, and the
// caller still observes the failure.
func TestClient_UnauthorizedInvalidatesAndRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "token expired"})
	}))
	defer server.Close()

	tokens := &tokenSourceMock{token: "t1"}
	nav := &navigatorMock{}

	client := NewClient(server.URL)
	client.SetTokenSource(tokens)
	client.SetNavigator(nav)

	_, err := client.MyProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	assert.Equal(t, 1, tokens.invalidations())
	require.Len(t, nav.logins(), 1)
	assert.Equal(t, "/perfil/mi-perfil", nav.logins()[0])
}

// TestClient_UnauthorizedConcurrent verifies at most one login redirect
// fires even when many requests fail with 401 together.
func TestClient_UnauthorizedConcurrent(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &tokenSourceMock{token: "t1"}
	nav := &navigatorMock{}

	client := NewClient(server.URL)
	client.SetTokenSource(tokens)
	client.SetNavigator(nav)

	const parallel = 8
	var wg sync.WaitGroup
	errs := make([]error, parallel)
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.MyProfile(context.Background())
		}(i)
	}

	close(release)
	wg.Wait()

	// Every caller observed its own failure
	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	}

	// But navigation fired exactly once
	assert.Len(t, nav.logins(), 1)
}

// TestClient_UnauthorizedAtAuthView verifies no redirect is issued when
// the user is already on an auth view.
func TestClient_UnauthorizedAtAuthView(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &tokenSourceMock{token: "t1"}
	nav := &navigatorMock{atAuthView: true}

	client := NewClient(server.URL)
	client.SetTokenSource(tokens)
	client.SetNavigator(nav)

	_, err := client.MyProfile(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, tokens.invalidations())
	assert.Empty(t, nav.logins())
}

// TestClient_RejectedLoginDoesNotInvalidate verifies a 401 from the
// login endpoint itself is a failed attempt, not a session expiry.
func TestClient_RejectedLoginDoesNotInvalidate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Message: "bad credentials"})
	}))
	defer server.Close()

	tokens := &tokenSourceMock{}
	nav := &navigatorMock{}

	client := NewClient(server.URL)
	client.SetTokenSource(tokens)
	client.SetNavigator(nav)

	_, err := client.Login(context.Background(), api.LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	assert.Zero(t, tokens.invalidations())
	assert.Empty(t, nav.logins())
}

func TestClient_ForbiddenRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	tokens := &tokenSourceMock{token: "t1"}
	nav := &navigatorMock{}

	client := NewClient(server.URL)
	client.SetTokenSource(tokens)
	client.SetNavigator(nav)

	_, err := client.MyProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsForbidden(err))

	nav.mu.Lock()
	defer nav.mu.Unlock()
	assert.Equal(t, 1, nav.forbiddenCalls)
	// 403 does not tear the session down
	assert.Zero(t, tokens.invalidated)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", ErrorMessage(&APIError{Status: 400, Message: "boom"}, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(&APIError{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(assert.AnError, "fallback"))
}
