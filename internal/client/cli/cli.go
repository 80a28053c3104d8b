package cli

import (
	"context"
	"fmt"

	"github.com/docport/portal/internal/client/iocli"
	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

// SessionService is the slice of the session store the views use.
type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req api.RegisterRequest) (string, error)
	Logout(ctx context.Context, silent bool)
	FetchMe(ctx context.Context) (*models.User, error)
	IsAuthenticated() bool
	User() *models.User
	Token() string
	Err() string
}

// ProfileService is the slice of the profile store the views use.
type ProfileService interface {
	FetchOwnProfile(ctx context.Context)
	SaveProfile(ctx context.Context, req api.UpsertProfileRequest) bool
	AddHighlight(ctx context.Context, req api.CreateHighlightRequest) (*models.Highlight, error)
	UpdateHighlight(ctx context.Context, id int64, req api.UpdateHighlightRequest) (*models.Highlight, error)
	DeleteHighlight(ctx context.Context, id int64) error
	AddEvidence(ctx context.Context, req api.CreateEvidenceRequest) (*models.Evidence, error)
	UpdateEvidence(ctx context.Context, id int64, req api.UpdateEvidenceRequest) (*models.Evidence, error)
	DeleteEvidence(ctx context.Context, id int64) error
	Profile() *models.Profile
	Err() string
}

// DocumentsService is the slice of the document service the views use.
type DocumentsService interface {
	Upload(ctx context.Context, paths ...string) ([]models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	Delete(ctx context.Context, id string) error
}

// Navigator is the slice of the router the views use.
type Navigator interface {
	Navigate(ctx context.Context, name string) router.Resolution
	Current() router.Route
	ReturnTo() string
}

// Cli dispatches the portal commands. Every view command goes through
// the router guard before its store calls, so the CLI observes the same
// allow/redirect decisions the browser client did.
type Cli struct {
	io        iocli.IO
	session   SessionService
	profile   ProfileService
	documents DocumentsService
	router    Navigator
}

func New(io iocli.IO, session SessionService, profile ProfileService, documents DocumentsService, nav Navigator) *Cli {
	return &Cli{
		io:        io,
		session:   session,
		profile:   profile,
		documents: documents,
		router:    nav,
	}
}

// Run executes a single command.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "home":
		return c.runHome(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "highlight":
		return c.runHighlight(ctx, args)
	case "evidence":
		return c.runEvidence(ctx, args)
	case "documents":
		return c.runDocuments(ctx, args)
	case "open":
		return c.runOpen(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// navigate runs the guard for the named view. When the guard redirects,
// the reason is reported and ok is false; the command stops there.
func (c *Cli) navigate(ctx context.Context, name string) (router.Resolution, bool) {
	res := c.router.Navigate(ctx, name)
	if !res.Redirected {
		return res, true
	}

	switch res.Route.Name {
	case router.RouteLogin:
		c.io.Println("Authentication required. Please run 'portal login' first.")
		if res.Query != nil {
			if target := res.Query.Get("redirect"); target != "" {
				c.io.Printf("After login you will return to %s\n", target)
			}
		}
	case router.RouteForbidden:
		c.io.Println("Access denied: your role does not allow this view.")
	case router.RouteAppHome:
		c.io.Println("You are already logged in.")
	default:
		c.io.Printf("Redirected to %s\n", res.Route.Name)
	}

	return res, false
}

func PrintUsage() {
	fmt.Println("Recruitment Portal Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  portal [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version            Show version information")
	fmt.Println("  --server URL         Backend base URL (default: " + "$PORTAL_SERVER_URL or http://localhost:3000/api)")
	fmt.Println("  --db PATH            Path to local session database (default: $PORTAL_DB_PATH or portal-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                          Create a new account")
	fmt.Println("  login                             Log in to the portal")
	fmt.Println("  logout                            Log out and clear the local session")
	fmt.Println("  status                            Show session status")
	fmt.Println("  home                              Open the authenticated home view")
	fmt.Println("  profile show                      Show your applicant profile")
	fmt.Println("  profile save [flags]              Create or update your profile")
	fmt.Println("  highlight add|update|delete       Manage profile highlights")
	fmt.Println("  evidence add|update|delete        Manage profile evidence records")
	fmt.Println("  documents upload|list|delete      Manage uploaded documents")
	fmt.Println("  open ROUTE                        Navigate to a named view")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  portal login")
	fmt.Println("  portal profile save --summary 'Mathematics teacher, 10 years' --modality hybrid")
	fmt.Println("  portal highlight add --title 'National teaching award 2023'")
	fmt.Println("  portal evidence add --type CERTIFICATE --name 'B2 English' --url https://... --file cert.pdf")
	fmt.Println("  portal documents upload cv.pdf diploma.pdf")
	fmt.Println("  portal --server https://portal.example.com/api status")
}
