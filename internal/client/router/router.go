package router

import (
	"context"
	"net/url"
	"sync"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/models"
)

// Session is the slice of the session store the guard consults. The
// store reference is passed in explicitly; the router never reaches for
// ambient global state.
type Session interface {
	// Token returns the current credential, "" when absent.
	Token() string

	// User returns the cached user, nil while none is loaded.
	User() *models.User

	// IsAuthenticated reports whether a credential is present.
	IsAuthenticated() bool

	// Role returns the cached user's role, "" while no user is loaded.
	Role() models.Role

	// HydrateFromStorage confirms a restored credential against the
	// backend, tearing the session down on failure. Never fails past
	// its boundary.
	HydrateFromStorage(ctx context.Context)
}

// Resolution is the outcome of one navigation attempt: the view that
// was actually reached and, when the guard intervened, where the
// attempt was redirected from.
type Resolution struct {
	Route      Route
	Redirected bool
	Query      url.Values
}

// Router evaluates the navigation guard and tracks the current view.
// It also implements the api.Navigator policy the HTTP client consults
// on 401/403 responses.
type Router struct {
	mu       sync.Mutex
	routes   map[string]Route
	session  Session
	current  Route
	returnTo string
}

// Compile-time check that Router implements the client's navigation policy
var _ clientapi.Navigator = (*Router)(nil)

// New creates a router over the given route table. The initial view is
// the public home.
func New(session Session, routes []Route) *Router {
	table := make(map[string]Route, len(routes))
	for _, route := range routes {
		table[route.Name] = route
	}

	return &Router{
		routes:  table,
		session: session,
		current: table[RoutePublicHome],
	}
}

// Navigate evaluates the guard for the named view, exactly once per
// attempt:
//
//  1. a credential without a cached user triggers hydration first; a
//     failed hydration tears the session down and changes the outcome
//     of the remaining checks within this same attempt;
//  2. guestOnly + authenticated redirects to the authenticated home;
//  3. public routes pass;
//  4. requiresAuth without authentication redirects to login, with the
//     attempted path as the "redirect" query parameter;
//  5. a non-empty role set without a matching role redirects to
//     forbidden;
//  6. everything else is allowed.
//
// Unknown names resolve to the not-found view.
func (r *Router) Navigate(ctx context.Context, name string) Resolution {
	target, ok := r.route(name)
	if !ok {
		target, _ = r.route(RouteNotFound)
	}

	if r.session.Token() != "" && r.session.User() == nil {
		r.session.HydrateFromStorage(ctx)
	}

	authenticated := r.session.IsAuthenticated()

	if target.GuestOnly && authenticated {
		return r.redirect(RouteAppHome, nil)
	}

	if target.Public {
		return r.commit(target)
	}

	if target.RequiresAuth && !authenticated {
		return r.redirect(RouteLogin, url.Values{"redirect": {target.Path}})
	}

	if len(target.Roles) > 0 && !target.HasRole(r.session.Role()) {
		return r.redirect(RouteForbidden, nil)
	}

	return r.commit(target)
}

// Current returns the view the router is on.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// RedirectToLogin moves to the login view carrying the originating path
// as the return target. No-op when already on an auth view, so stacked
// 401 responses cause at most one visible transition.
func (r *Router) RedirectToLogin(from string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current.Name == RouteLogin || r.current.Name == RouteRegister {
		return
	}
	r.current = r.routes[RouteLogin]
	r.returnTo = from
}

// ReturnTo is the path a login redirect originated from, consumed by
// the login view to resume the interrupted navigation. Reading it
// clears it.
func (r *Router) ReturnTo() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	target := r.returnTo
	r.returnTo = ""
	return target
}

// RedirectToForbidden moves to the forbidden view, idempotently.
func (r *Router) RedirectToForbidden() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current.Name == RouteForbidden {
		return
	}
	r.current = r.routes[RouteForbidden]
}

// AtAuthView reports whether the current view is login or register.
func (r *Router) AtAuthView() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Name == RouteLogin || r.current.Name == RouteRegister
}

func (r *Router) route(name string) (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[name]
	return route, ok
}

func (r *Router) commit(target Route) Resolution {
	r.mu.Lock()
	r.current = target
	r.mu.Unlock()
	return Resolution{Route: target}
}

func (r *Router) redirect(name string, query url.Values) Resolution {
	r.mu.Lock()
	target := r.routes[name]
	r.current = target
	if name == RouteLogin && query != nil {
		r.returnTo = query.Get("redirect")
	}
	r.mu.Unlock()
	return Resolution{Route: target, Redirected: true, Query: query}
}
