package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// bucketSession holds the persisted session entries.
var bucketSession = []byte("session")

// Canonical session keys. Earlier client revisions wrote the credential
// and the user under several different names; migrateLegacyKeys folds
// those into the canonical pair at open time.
var (
	keyToken = []byte("access_token")
	keyUser  = []byte("user")
)

// legacyTokenKeys and legacyUserKeys are the historical aliases of the
// canonical keys. They are read once during migration and then deleted.
var (
	legacyTokenKeys = [][]byte{[]byte("token"), []byte("auth_token"), []byte("jwt")}
	legacyUserKeys  = [][]byte{[]byte("current_user"), []byte("user_json")}
)

// Storage is the BoltDB-backed session storage for the client.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the client database at dbPath and migrates any
// legacy session keys to the canonical schema.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := storage.migrateLegacyKeys(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate legacy session keys: %w", err)
	}

	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they do not exist yet.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		return nil
	})
}

// migrateLegacyKeys is the one-time migration from the alias keys older
// revisions used. If the canonical key is absent and an alias holds a
// value, the value moves to the canonical key; all aliases are deleted
// either way, so alias-scanning never outlives this function.
func (s *Storage) migrateLegacyKeys() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := migrateAliases(bucket, keyToken, legacyTokenKeys); err != nil {
			return err
		}
		return migrateAliases(bucket, keyUser, legacyUserKeys)
	})
}

func migrateAliases(bucket *bbolt.Bucket, canonical []byte, aliases [][]byte) error {
	for _, alias := range aliases {
		value := bucket.Get(alias)
		if value == nil {
			continue
		}
		if bucket.Get(canonical) == nil {
			if err := bucket.Put(canonical, value); err != nil {
				return fmt.Errorf("failed to migrate key %q: %w", alias, err)
			}
		}
		if err := bucket.Delete(alias); err != nil {
			return fmt.Errorf("failed to delete legacy key %q: %w", alias, err)
		}
	}
	return nil
}
