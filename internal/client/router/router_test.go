package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docport/portal/internal/models"
)

// sessionMock implements Session for testing
type sessionMock struct {
	token        string
	user         *models.User
	hydrateCalls int
	onHydrate    func(m *sessionMock)
}

func (m *sessionMock) Token() string { return m.token }

func (m *sessionMock) User() *models.User { return m.user }

func (m *sessionMock) IsAuthenticated() bool { return m.token != "" }

func (m *sessionMock) Role() models.Role {
	if m.user == nil {
		return ""
	}
	return m.user.Role
}

func (m *sessionMock) HydrateFromStorage(ctx context.Context) {
	m.hydrateCalls++
	if m.onHydrate != nil {
		m.onHydrate(m)
	}
}

func authenticated(role models.Role) *sessionMock {
	return &sessionMock{
		token: "t1",
		user:  &models.User{ID: 1, Username: "alice", Role: role},
	}
}

func TestNavigate_UnauthenticatedToProtected(t *testing.T) {
	r := New(&sessionMock{}, DefaultRoutes())

	res := r.Navigate(context.Background(), RouteProfile)

	assert.True(t, res.Redirected)
	assert.Equal(t, RouteLogin, res.Route.Name)
	require.NotNil(t, res.Query)
	assert.Equal(t, "/app/profile", res.Query.Get("redirect"))
	assert.Equal(t, "/app/profile", r.ReturnTo())
}

func TestNavigate_AuthenticatedToGuestOnly(t *testing.T) {
	r := New(authenticated(models.RoleTeacher), DefaultRoutes())

	for _, name := range []string{RouteLogin, RouteRegister} {
		res := r.Navigate(context.Background(), name)
		assert.True(t, res.Redirected, name)
		assert.Equal(t, RouteAppHome, res.Route.Name, name)
	}
}

func TestNavigate_PublicAlwaysPasses(t *testing.T) {
	for _, session := range []*sessionMock{{}, authenticated(models.RoleTeacher)} {
		r := New(session, DefaultRoutes())

		res := r.Navigate(context.Background(), RouteAbout)
		assert.False(t, res.Redirected)
		assert.Equal(t, RouteAbout, res.Route.Name)
	}
}

func TestNavigate_RoleGate(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		expected string
	}{
		{name: "admin passes", role: models.RoleAdmin, expected: RouteAdmins},
		{name: "teacher forbidden", role: models.RoleTeacher, expected: RouteForbidden},
		{name: "committee forbidden", role: models.RoleCommittee, expected: RouteForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(authenticated(tt.role), DefaultRoutes())

			res := r.Navigate(context.Background(), RouteAdmins)
			assert.Equal(t, tt.expected, res.Route.Name)
			assert.Equal(t, tt.expected != RouteAdmins, res.Redirected)
		})
	}
}

// TestNavigate_EmptyRoleSet verifies a requiresAuth route without roles
// admits every authenticated role.
func TestNavigate_EmptyRoleSet(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleTeacher, models.RoleCommittee} {
		r := New(authenticated(role), DefaultRoutes())

		res := r.Navigate(context.Background(), RouteAppHome)
		assert.False(t, res.Redirected, role)
		assert.Equal(t, RouteAppHome, res.Route.Name, role)
	}
}

// TestNavigate_FlaglessRouteIsExposed pins the implicit behavior that a
// route declaring no meta flags at all is reachable by anyone,
// including unauthenticated sessions. Easy to trip over when adding
// routes: no flags means no protection.
func TestNavigate_FlaglessRouteIsExposed(t *testing.T) {
	routes := append(DefaultRoutes(), Route{Path: "/bare", Name: "bare"})

	r := New(&sessionMock{}, routes)

	res := r.Navigate(context.Background(), "bare")
	assert.False(t, res.Redirected)
	assert.Equal(t, "bare", res.Route.Name)
}

func TestNavigate_UnknownRoute(t *testing.T) {
	r := New(&sessionMock{}, DefaultRoutes())

	res := r.Navigate(context.Background(), "no-such-view")
	assert.False(t, res.Redirected)
	assert.Equal(t, RouteNotFound, res.Route.Name)
}

// TestNavigate_HydratesPendingSession verifies step 1 of the guard: a
// credential without a cached user triggers hydration before the checks
// run, and the hydrated role decides the outcome.
func TestNavigate_HydratesPendingSession(t *testing.T) {
	session := &sessionMock{
		token: "t1",
		onHydrate: func(m *sessionMock) {
			m.user = &models.User{ID: 1, Username: "alice", Role: models.RoleAdmin}
		},
	}
	r := New(session, DefaultRoutes())

	res := r.Navigate(context.Background(), RouteAdmins)

	assert.Equal(t, 1, session.hydrateCalls)
	assert.False(t, res.Redirected)
	assert.Equal(t, RouteAdmins, res.Route.Name)
}

// TestNavigate_FailedHydrationChangesOutcome verifies a hydration that
// tears the session down flips the authenticated outcome within the
// same navigation attempt.
func TestNavigate_FailedHydrationChangesOutcome(t *testing.T) {
	session := &sessionMock{
		token: "stale",
		onHydrate: func(m *sessionMock) {
			// Silent logout inside hydration
			m.token = ""
			m.user = nil
		},
	}
	r := New(session, DefaultRoutes())

	res := r.Navigate(context.Background(), RouteProfile)

	assert.Equal(t, 1, session.hydrateCalls)
	assert.True(t, res.Redirected)
	assert.Equal(t, RouteLogin, res.Route.Name)
}

// TestNavigate_NoHydrationWhenUserCached verifies hydration only runs
// for the token-without-user transient state.
func TestNavigate_NoHydrationWhenUserCached(t *testing.T) {
	session := authenticated(models.RoleTeacher)
	r := New(session, DefaultRoutes())

	r.Navigate(context.Background(), RouteAppHome)
	assert.Zero(t, session.hydrateCalls)
}

func TestRedirectToLogin_Idempotent(t *testing.T) {
	r := New(&sessionMock{}, DefaultRoutes())

	r.RedirectToLogin("/app/profile")
	assert.Equal(t, RouteLogin, r.Current().Name)
	assert.True(t, r.AtAuthView())

	// Already at login: no-op, the first return target survives
	r.RedirectToLogin("/app/documents")
	assert.Equal(t, RouteLogin, r.Current().Name)
	assert.Equal(t, "/app/profile", r.ReturnTo())
}

func TestRedirectToForbidden_Idempotent(t *testing.T) {
	r := New(authenticated(models.RoleTeacher), DefaultRoutes())

	r.RedirectToForbidden()
	assert.Equal(t, RouteForbidden, r.Current().Name)

	r.RedirectToForbidden()
	assert.Equal(t, RouteForbidden, r.Current().Name)
}

func TestReturnTo_ConsumedOnRead(t *testing.T) {
	r := New(&sessionMock{}, DefaultRoutes())

	r.RedirectToLogin("/app/postings")
	assert.Equal(t, "/app/postings", r.ReturnTo())
	assert.Equal(t, "", r.ReturnTo())
}
