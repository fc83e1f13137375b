package repository

import "context"

// KVRepo stores string-keyed JSON blobs. It is the durable side of the
// planner and onboarding state.
type KVRepo interface {
	// Get returns the value for key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}
