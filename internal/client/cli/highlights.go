package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/pkg/api"
)

func (c *Cli) runHighlight(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal highlight add|update|delete")
	}

	switch args[0] {
	case "add":
		return c.runHighlightAdd(ctx, args[1:])
	case "update":
		return c.runHighlightUpdate(ctx, args[1:])
	case "delete":
		return c.runHighlightDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown highlight subcommand: %s", args[0])
	}
}

func (c *Cli) runHighlightAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("highlight add", flag.ContinueOnError)
	title := fs.String("title", "", "Highlight title (required)")
	description := fs.String("description", "", "Optional description")
	evidenceURL := fs.String("evidence-url", "", "Optional supporting URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	highlight, err := c.profile.AddHighlight(ctx, api.CreateHighlightRequest{
		Title:       *title,
		Description: *description,
		EvidenceURL: *evidenceURL,
	})
	if err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Highlight added (id %d).\n", highlight.ID)
	return nil
}

func (c *Cli) runHighlightUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("highlight update", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Highlight id (required)")
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	evidenceURL := fs.String("evidence-url", "", "New supporting URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	// Only flags that were actually set become part of the patch.
	req := api.UpdateHighlightRequest{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			req.Title = title
		case "description":
			req.Description = description
		case "evidence-url":
			req.EvidenceURL = evidenceURL
		}
	})

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	if _, err := c.profile.UpdateHighlight(ctx, *id, req); err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Highlight %d updated.\n", *id)
	return nil
}

func (c *Cli) runHighlightDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("highlight delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Highlight id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	if err := c.profile.DeleteHighlight(ctx, *id); err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Highlight %d deleted.\n", *id)
	return nil
}
