package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/client/cli"
	"github.com/docport/portal/internal/client/documents"
	"github.com/docport/portal/internal/client/iocli"
	"github.com/docport/portal/internal/client/profile"
	"github.com/docport/portal/internal/client/router"
	"github.com/docport/portal/internal/client/session"
	"github.com/docport/portal/internal/client/storage/boltdb"
	"github.com/docport/portal/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Load()

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", cfg.ServerURL, "Backend base URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to local session database")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// The HTTP client, the session store and the router form a cycle
	// (client -> session for tokens, client -> router for redirects,
	// router -> session for the guard), broken here with two setters.
	apiClient := clientapi.NewClient(*serverURL)

	sessionStore := session.New(apiClient, boltStorage)
	if err := sessionStore.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}

	nav := router.New(sessionStore, router.DefaultRoutes())
	apiClient.SetTokenSource(sessionStore)
	apiClient.SetNavigator(nav)

	profileStore := profile.New(apiClient)
	documentsService := documents.New(apiClient)

	app := cli.New(iocli.NewStdio(), sessionStore, profileStore, documentsService, nav)
	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Recruitment Portal Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
