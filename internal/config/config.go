package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor the flags say
// otherwise.
const (
	DefaultServerURL = "http://localhost:3000/api"
	DefaultDBPath    = "portal-client.db"
)

// Config is the client configuration.
type Config struct {
	// ServerURL is the backend base URL (PORTAL_SERVER_URL).
	ServerURL string

	// DBPath is the local session database path (PORTAL_DB_PATH).
	DBPath string
}

// Load reads the configuration from the environment, honoring a .env
// file in the working directory when present. Flags override these
// values in main.
func Load() *Config {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		ServerURL: envOr("PORTAL_SERVER_URL", DefaultServerURL),
		DBPath:    envOr("PORTAL_DB_PATH", DefaultDBPath),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
