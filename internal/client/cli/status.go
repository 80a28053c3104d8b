package cli

import (
	"context"
	"time"

	"github.com/docport/portal/internal/client/session"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	if !c.session.IsAuthenticated() {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'portal login' to sign in.")
		return nil
	}

	c.io.Println("Status: Authenticated")

	user := c.session.User()
	if user == nil {
		// Token restored but not yet confirmed against the backend.
		if _, err := c.session.FetchMe(ctx); err != nil {
			c.io.Println("Warning: could not confirm the session with the server.")
		}
		user = c.session.User()
	}

	if user != nil {
		c.io.Printf("Username: %s\n", user.Username)
		if user.Name != "" {
			c.io.Printf("Name:     %s\n", user.Name)
		}
		c.io.Printf("Role:     %s\n", user.Role)
	}

	if expiresAt, ok := session.TokenExpiresAt(c.session.Token()); ok {
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining := time.Until(expiresAt); remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("⚠️  Token has expired. Please login again.")
		}
	}

	c.io.Printf("Current view: %s\n", c.router.Current().Name)
	return nil
}
