package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORTAL_SERVER_URL", "")
	t.Setenv("PORTAL_DB_PATH", "")

	cfg := Load()
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORTAL_SERVER_URL", "https://portal.example.com/api")
	t.Setenv("PORTAL_DB_PATH", "/tmp/portal.db")

	cfg := Load()
	assert.Equal(t, "https://portal.example.com/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/portal.db", cfg.DBPath)
}
