// Package kvstore is the client-local key-value storage the goal engine
// persists to. Every key holds one JSON document.
package kvstore

import (
	"context"
	"fmt"
	"strings"
)

// Store persists JSON values by key. Load returns apperrors.ErrNotFound when
// the key has never been written.
type Store interface {
	Load(ctx context.Context, key string, dst any) error
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("kv key is required")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("kv key %q contains path characters", key)
	}
	return nil
}
