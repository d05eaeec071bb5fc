package storage

import (
	"context"
	"time"
)

// ObjectInfo describes a stored object, as returned by List.
type ObjectInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ObjectStore is a key-based blob store with public URL resolution.
type ObjectStore interface {
	// Upload writes data under key. Partial writes on failure are the
	// backend's concern; callers do not attempt cleanup.
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// PublicURL resolves the stable, client-facing URL for an uploaded
	// key. Pure function of key and bucket configuration.
	PublicURL(key string) string

	// List returns all objects in the bucket.
	List(ctx context.Context) ([]ObjectInfo, error)
}
