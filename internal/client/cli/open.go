package cli

import (
	"context"
	"fmt"

	"github.com/docport/portal/internal/client/router"
)

// runOpen navigates to any named view and reports the guard's decision.
// Useful for role-gated views like admins that have no dedicated
// command surface in this client.
func (c *Cli) runOpen(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal open ROUTE")
	}

	res := c.router.Navigate(ctx, args[0])
	if res.Redirected {
		switch res.Route.Name {
		case router.RouteLogin:
			c.io.Println("Authentication required. Please run 'portal login' first.")
		case router.RouteForbidden:
			c.io.Println("Access denied: your role does not allow this view.")
		case router.RouteAppHome:
			c.io.Println("You are already logged in.")
		}
	}

	c.io.Printf("Current view: %s (%s)\n", res.Route.Name, res.Route.Path)
	return nil
}
