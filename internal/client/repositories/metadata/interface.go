// Package metadata is the client's persistent key-value store. It survives
// process restarts and holds the session token and the settings object.
package metadata

import (
	"context"
)

// Repository is a byte-valued key-value store.
//
// Get returns (nil, nil) for a missing key. Delete of a missing key is not
// an error. Implementations must be safe for concurrent use.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	// KeyToken holds the raw bearer token.
	KeyToken = "token"
	// KeySettings holds the JSON-encoded display settings.
	KeySettings = "userSettings"
)
