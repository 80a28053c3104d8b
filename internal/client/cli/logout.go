package cli

import (
	"context"

	"github.com/docport/portal/internal/client/router"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	c.session.Logout(ctx, false)

	// Leave the authenticated area explicitly.
	c.router.Navigate(ctx, router.RoutePublicHome)

	c.io.Println("✓ Logged out. Your local session has been cleared.")
	return nil
}
