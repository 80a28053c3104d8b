package cli

import (
	"context"

	"github.com/docport/portal/internal/client/router"
)

func (c *Cli) runHome(ctx context.Context) error {
	if _, ok := c.navigate(ctx, router.RouteAppHome); !ok {
		return nil
	}

	c.io.Println("=== Portal Home ===")
	c.io.Println()

	if user := c.session.User(); user != nil {
		name := user.Name
		if name == "" {
			name = user.Username
		}
		c.io.Printf("Welcome back, %s (%s).\n", name, user.Role)
	}

	c.io.Println()
	c.io.Println("Available views: profile, documents, status.")
	return nil
}
