package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/courseplan/internal/repository"
)

// ErrQuotaExceeded simulates a full or disabled storage backend.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// FailingKV wraps a KVRepo and fails writes on demand. Reads pass through.
// Puts counts every attempted write, failed or not.
type FailingKV struct {
	repository.KVRepo
	FailPuts bool
	Err      error
	Puts     atomic.Int32
}

func (f *FailingKV) Put(ctx context.Context, key, value string) error {
	f.Puts.Add(1)
	if f.FailPuts {
		if f.Err != nil {
			return f.Err
		}
		return ErrQuotaExceeded
	}
	return f.KVRepo.Put(ctx, key, value)
}
