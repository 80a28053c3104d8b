package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/docport/portal/internal/client/documents"
	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/internal/models"
	"github.com/docport/portal/pkg/api"
)

func (c *Cli) runEvidence(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal evidence add|update|delete")
	}

	switch args[0] {
	case "add":
		return c.runEvidenceAdd(ctx, args[1:])
	case "update":
		return c.runEvidenceUpdate(ctx, args[1:])
	case "delete":
		return c.runEvidenceDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown evidence subcommand: %s", args[0])
	}
}

func (c *Cli) runEvidenceAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evidence add", flag.ContinueOnError)
	evidenceType := fs.String("type", "", "Evidence type: CERTIFICATE, DIPLOMA, PUBLICATION, COURSE, OTHER (required)")
	name := fs.String("name", "", "Evidence name (required)")
	url := fs.String("url", "", "Document URL (required)")
	file := fs.String("file", "", "Local file to hash for contentHash")
	hash := fs.String("sha256", "", "Hex SHA-256 of the document, if no local file")
	issued := fs.String("issued", "", "Issue date (YYYY-MM-DD)")
	expires := fs.String("expires", "", "Expiry date (YYYY-MM-DD)")
	note := fs.String("note", "", "Optional note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !models.EvidenceType(*evidenceType).Valid() {
		return fmt.Errorf("unknown evidence type: %s", *evidenceType)
	}
	if *name == "" || *url == "" {
		return fmt.Errorf("--name and --url are required")
	}

	contentHash := *hash
	if *file != "" {
		computed, err := documents.FileSHA256(*file)
		if err != nil {
			return err
		}
		contentHash = computed
	}
	if contentHash == "" {
		return fmt.Errorf("either --file or --sha256 is required")
	}

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	evidence, err := c.profile.AddEvidence(ctx, api.CreateEvidenceRequest{
		Type:        models.EvidenceType(*evidenceType),
		Name:        *name,
		URL:         *url,
		ContentHash: contentHash,
		IssueDate:   *issued,
		ExpiryDate:  *expires,
		Note:        *note,
	})
	if err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Evidence added (id %d).\n", evidence.ID)
	return nil
}

func (c *Cli) runEvidenceUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evidence update", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Evidence id (required)")
	evidenceType := fs.String("type", "", "New evidence type")
	name := fs.String("name", "", "New name")
	url := fs.String("url", "", "New document URL")
	hash := fs.String("sha256", "", "New hex SHA-256")
	issued := fs.String("issued", "", "New issue date (YYYY-MM-DD)")
	expires := fs.String("expires", "", "New expiry date (YYYY-MM-DD)")
	note := fs.String("note", "", "New note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}
	if *evidenceType != "" && !models.EvidenceType(*evidenceType).Valid() {
		return fmt.Errorf("unknown evidence type: %s", *evidenceType)
	}

	// Only flags that were actually set become part of the patch.
	req := api.UpdateEvidenceRequest{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			t := models.EvidenceType(*evidenceType)
			req.Type = &t
		case "name":
			req.Name = name
		case "url":
			req.URL = url
		case "sha256":
			req.ContentHash = hash
		case "issued":
			req.IssueDate = issued
		case "expires":
			req.ExpiryDate = expires
		case "note":
			req.Note = note
		}
	})

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	if _, err := c.profile.UpdateEvidence(ctx, *id, req); err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Evidence %d updated.\n", *id)
	return nil
}

func (c *Cli) runEvidenceDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evidence delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "Evidence id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	if _, ok := c.navigate(ctx, router.RouteProfile); !ok {
		return nil
	}

	if err := c.profile.DeleteEvidence(ctx, *id); err != nil {
		if msg := c.profile.Err(); msg != "" {
			c.io.Printf("Error: %s\n", msg)
		}
		return err
	}

	c.io.Printf("✓ Evidence %d deleted.\n", *id)
	return nil
}
