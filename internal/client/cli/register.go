package cli

import (
	"context"
	"fmt"

	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	if _, ok := c.navigate(ctx, router.RouteRegister); !ok {
		return nil
	}

	c.io.Println("=== Registration ===")
	c.io.Println()

	name, err := c.io.ReadInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	role, err := c.io.ReadInput("Role (TEACHER/COMMITTEE, empty for default): ")
	if err != nil {
		return fmt.Errorf("failed to read role: %w", err)
	}
	if role != "" && !models.Role(role).Valid() {
		return fmt.Errorf("unknown role: %s", role)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Registering...")

	message, err := c.session.Register(ctx, api.RegisterRequest{
		Name:     name,
		Username: username,
		Password: password,
		Role:     models.Role(role),
	})
	if err != nil {
		if msg := c.session.Err(); msg != "" {
			c.io.Printf("Registration failed: %s\n", msg)
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	if message != "" {
		c.io.Println(message)
	}
	c.io.Println()
	c.io.Println("Please run 'portal login' to sign in.")

	return nil
}
