package storage

import (
	"context"

	"github.com/docport/portal/internal/models"
)

// SessionStorage defines the interface for persisting session state on
// the client. The credential and the user record are two independent
// entries; the session store is responsible for keeping them mutually
// consistent (both written on login, both removed on logout).
type SessionStorage interface {
	// SaveToken stores the bearer credential.
	SaveToken(ctx context.Context, token string) error

	// Token retrieves the stored credential.
	// Returns ErrNotFound if no credential exists.
	Token(ctx context.Context) (string, error)

	// SaveUser stores the serialized user record.
	SaveUser(ctx context.Context, user *models.User) error

	// User retrieves the stored user record.
	// Returns ErrNotFound if no user exists.
	User(ctx context.Context) (*models.User, error)

	// Clear removes both entries (logout). Clearing an already empty
	// storage is not an error.
	Clear(ctx context.Context) error
}
