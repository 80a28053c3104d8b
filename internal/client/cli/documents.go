package cli

import (
	"context"
	"fmt"

	"github.com/docport/portal/internal/client/router"
)

func (c *Cli) runDocuments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal documents upload|list|delete")
	}

	if _, ok := c.navigate(ctx, router.RouteDocuments); !ok {
		return nil
	}

	switch args[0] {
	case "upload":
		return c.runDocumentsUpload(ctx, args[1:])
	case "list":
		return c.runDocumentsList(ctx)
	case "delete":
		return c.runDocumentsDelete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown documents subcommand: %s", args[0])
	}
}

func (c *Cli) runDocumentsUpload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("usage: portal documents upload FILE [FILE...]")
	}

	docs, err := c.documents.Upload(ctx, paths...)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Uploaded %d document(s):\n", len(docs))
	for _, doc := range docs {
		c.io.Printf("  %s  %s (%d bytes)\n", doc.ID, doc.Name, doc.Size)
	}
	return nil
}

func (c *Cli) runDocumentsList(ctx context.Context) error {
	docs, err := c.documents.List(ctx)
	if err != nil {
		return err
	}

	c.io.Println("=== My Documents ===")
	c.io.Println()

	if len(docs) == 0 {
		c.io.Println("No documents uploaded.")
		return nil
	}

	for _, doc := range docs {
		c.io.Printf("  %s  %s  %s (%d bytes, uploaded %s)\n", doc.ID, doc.Name, doc.Type, doc.Size, doc.UploadDate)
	}
	return nil
}

func (c *Cli) runDocumentsDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: portal documents delete ID")
	}

	if err := c.documents.Delete(ctx, args[0]); err != nil {
		return err
	}

	c.io.Printf("✓ Document %s deleted.\n", args[0])
	return nil
}
