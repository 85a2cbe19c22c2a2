package store

import "context"

// KV defines the interface for durable key-value storage. The progression
// layer serializes its state through this; a remote store can replace the
// local one without touching game logic.
type KV interface {
	// Get returns the value for a key, or (nil, nil) if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value under a key, replacing any existing value.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases storage resources.
	Close() error
}

// Well-known keys used by the progression layer.
const (
	KeyGallery     = "gallery"
	KeyCurrentUser = "current_user"
	KeyPlayer      = "player"
	KeySpots       = "spots"
)
