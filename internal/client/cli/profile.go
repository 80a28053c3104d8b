package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal profile show|save")
	}

	switch args[0] {
	case "show":
		return c.runProfileShow(ctx)
	case "save":
		return c.runProfileSave(ctx, args[1:])
	default:
		return fmt.Errorf("unknown profile subcommand: %s", args[0])
	}
}

func (c *Cli) runProfileShow(ctx context.Context) error {
	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	c.profile.FetchOwnProfile(ctx)
	if msg := c.profile.Err(); msg != "" {
		return fmt.Errorf("failed to load profile: %s", msg)
	}

	data := c.profile.Profile()

	c.io.Println("=== My Profile ===")
	c.io.Println()

	if data.ID == 0 {
		c.io.Println("You have not saved a profile yet.")
		c.io.Println("Run 'portal profile save' to create one.")
	} else {
		c.io.Printf("Summary:  %s\n", orDash(data.Summary))
		c.io.Printf("Modality: %s\n", orDash(string(data.PreferredModality)))
	}

	c.io.Println()
	c.io.Printf("Highlights (%d):\n", len(data.Highlights))
	for _, h := range data.Highlights {
		c.io.Printf("  [%d] %s\n", h.ID, h.Title)
		if h.Description != "" {
			c.io.Printf("      %s\n", h.Description)
		}
		if h.EvidenceURL != "" {
			c.io.Printf("      evidence: %s\n", h.EvidenceURL)
		}
	}

	c.io.Println()
	c.io.Printf("Evidence (%d):\n", len(data.Evidence))
	for _, e := range data.Evidence {
		c.io.Printf("  [%d] %s: %s\n", e.ID, e.Type, e.Name)
		c.io.Printf("      %s\n", e.URL)
		if e.IssueDate != "" {
			c.io.Printf("      issued %s", e.IssueDate)
			if e.ExpiryDate != "" {
				c.io.Printf(", expires %s", e.ExpiryDate)
			}
			c.io.Println()
		}
	}

	return nil
}

func (c *Cli) runProfileSave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile save", flag.ContinueOnError)
	summary := fs.String("summary", "", "Profile summary")
	modality := fs.String("modality", "", "Preferred modality (onsite/remote/hybrid)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modality != "" {
		switch models.Modality(*modality) {
		case models.ModalityOnsite, models.ModalityRemote, models.ModalityHybrid:
		default:
			return fmt.Errorf("unknown modality: %s", *modality)
		}
	}

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	ok := c.profile.SaveProfile(ctx, api.UpsertProfileRequest{
		Summary:           *summary,
		PreferredModality: models.Modality(*modality),
	})
	if !ok {
		return fmt.Errorf("failed to save profile: %s", c.profile.Err())
	}

	c.io.Println("✓ Profile saved.")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
