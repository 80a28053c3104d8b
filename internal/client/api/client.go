package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/docport/portal/pkg/api"
)

// TokenSource supplies the current bearer credential to outgoing
// requests. Implemented by the session store.
type TokenSource interface {
	// Token returns the current credential, or "" when unauthenticated.
	Token() string

	// Invalidate clears the credential and the cached user, both in
	// memory and in persisted storage. Called on 401 responses.
	Invalidate()
}

// Navigator is the navigation policy consulted on authorization
// failures. The client never decides where to go itself; it reports the
// failure and the router decides. Implemented by the router.
type Navigator interface {
	// RedirectToLogin navigates to the login view, carrying the
	// originating path as the return target.
	RedirectToLogin(from string)

	// RedirectToForbidden navigates to the forbidden view. Must be a
	// no-op when already there.
	RedirectToForbidden()

	// AtAuthView reports whether the current view is an authentication
	// view (login/register), in which case no redirect is issued.
	AtAuthView() bool
}

// publicPaths are the authentication endpoints that never carry a
// bearer credential.
var publicPaths = map[string]bool{
	"/auth/login":    true,
	"/auth/register": true,
}

// Client is the HTTP client for the portal backend. All stores issue
// their requests through a single shared instance so the bearer
// attachment and the 401/403 policy apply uniformly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	nav        Navigator

	// redirecting guards against redirect storms when several requests
	// fail with 401 at the same time: only the first failure navigates.
	redirecting atomic.Bool
}

// NewClient creates a new API client for the given base URL. The token
// source and navigator are wired afterwards because both depend on the
// client themselves.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Keep the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetTokenSource wires the credential supplier.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// SetNavigator wires the navigation policy for 401/403 handling.
func (c *Client) SetNavigator(nav Navigator) {
	c.nav = nav
}

// doRequest performs a JSON request against the backend. The result, if
// non-nil, is decoded from a 2xx response body. Non-2xx responses are
// returned as *APIError after the authorization-failure policy ran; the
// caller always observes the error regardless of any redirect side
// effect.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachBearer(req, path)

	return c.send(req, path, result)
}

// doMultipart performs a multipart/form-data POST with an
// already-encoded form body.
func (c *Client) doMultipart(ctx context.Context, path string, form io.Reader, contentType string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, form)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	c.attachBearer(req, path)

	return c.send(req, path, result)
}

// attachBearer adds the Authorization header when a credential is
// available and the target is not a public auth endpoint. A stray
// "Bearer " prefix on the stored credential is stripped to avoid
// doubling it.
func (c *Client) attachBearer(req *http.Request, path string) {
	if c.tokens == nil || publicPaths[path] {
		return
	}

	token := strings.TrimPrefix(c.tokens.Token(), "Bearer ")
	if token == "" {
		return
	}

	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) send(req *http.Request, path string, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
			apiErr.Message = errResp.Message
			if apiErr.Message == "" {
				apiErr.Message = errResp.Error
			}
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}

		c.handleAuthFailure(apiErr, path)
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// handleAuthFailure applies the authorization policy: 401 invalidates
// the session and redirects to login (once, even when several requests
// fail together); 403 redirects to the forbidden view. The triggering
// error is never swallowed here.
func (c *Client) handleAuthFailure(apiErr *APIError, path string) {
	switch apiErr.Status {
	case http.StatusUnauthorized:
		if publicPaths[path] {
			// A rejected login attempt is not a session expiry.
			return
		}
		if c.tokens != nil {
			c.tokens.Invalidate()
		}
		if c.nav == nil || c.nav.AtAuthView() {
			return
		}
		if !c.redirecting.CompareAndSwap(false, true) {
			return
		}
		defer c.redirecting.Store(false)
		c.nav.RedirectToLogin(path)

	case http.StatusForbidden:
		if c.nav != nil {
			c.nav.RedirectToForbidden()
		}
	}
}
