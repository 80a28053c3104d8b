package router

import "github.com/docport/portal/internal/models"

// Route names. Views are addressed by name, never by path.
const (
	RoutePublicHome = "public-home"
	RouteAbout      = "about"
	RouteLogin      = "login"
	RouteRegister   = "register"
	RouteForbidden  = "forbidden"
	RouteNotFound   = "not-found"
	RouteAppHome    = "app-home"
	RouteProfile    = "profile"
	RoutePostings   = "postings"
	RouteDocuments  = "documents"
	RouteAdmins     = "admins"
)

// Route is a static view descriptor. The meta flags drive the guard:
// Public routes always pass, GuestOnly routes reject authenticated
// sessions, RequiresAuth routes reject unauthenticated ones, and a
// non-empty Roles set additionally restricts by role. A route with no
// flags at all is allowed for everyone.
type Route struct {
	Path         string
	Name         string
	Public       bool
	RequiresAuth bool
	GuestOnly    bool
	Roles        []models.Role
}

// HasRole reports whether role is in the route's role set.
func (r Route) HasRole(role models.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultRoutes is the portal's route table: a public group, an
// authenticated /app group and the admin view gated to the ADMIN role.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: RoutePublicHome, Public: true},
		{Path: "/about", Name: RouteAbout, Public: true},
		{Path: "/login", Name: RouteLogin, Public: true, GuestOnly: true},
		{Path: "/register", Name: RouteRegister, Public: true, GuestOnly: true},
		{Path: "/forbidden", Name: RouteForbidden, Public: true},
		{Path: "/not-found", Name: RouteNotFound, Public: true},

		{Path: "/app", Name: RouteAppHome, RequiresAuth: true},
		{Path: "/app/profile", Name: RouteProfile, RequiresAuth: true},
		{Path: "/app/postings", Name: RoutePostings, RequiresAuth: true},
		{Path: "/app/documents", Name: RouteDocuments, RequiresAuth: true},
		{Path: "/app/admins", Name: RouteAdmins, RequiresAuth: true, Roles: []models.Role{models.RoleAdmin}},
	}
}
