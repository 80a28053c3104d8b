package cli

import (
	"context"
	"fmt"

	"github.com/docport/portal/internal/client/router"
)

func (c *Cli) runLogin(ctx context.Context) error {
	if _, ok := c.navigate(ctx, router.RouteLogin); !ok {
		return nil
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	if err := c.session.Login(ctx, username, password); err != nil {
		if msg := c.session.Err(); msg != "" {
			c.io.Printf("Login failed: %s\n", msg)
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	if user := c.session.User(); user != nil {
		c.io.Printf("Username: %s\n", user.Username)
		c.io.Printf("Role:     %s\n", user.Role)
	}

	// Resume the navigation that forced the login, if any.
	if target := c.router.ReturnTo(); target != "" {
		c.io.Printf("You can now return to %s\n", target)
	}

	return nil
}
