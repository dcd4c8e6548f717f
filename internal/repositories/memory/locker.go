package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
)

// keyedLocker hands out one exclusive, context-aware lock per entity key.
// A lock is a channel with capacity one: holding it means having sent into it.
type keyedLocker struct {
	mu    sync.Mutex
	slots map[repositories.EntityKey]chan struct{}
}

func newKeyedLocker() *keyedLocker {
	return &keyedLocker{slots: make(map[repositories.EntityKey]chan struct{})}
}

func (l *keyedLocker) slot(key repositories.EntityKey) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Lock blocks until the key is free or ctx is done.
func (l *keyedLocker) Lock(ctx context.Context, key repositories.EntityKey) error {
	select {
	case l.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for %s %s: %w", apperrors.ErrCancelled, key.Type, key.ID, ctx.Err())
	}
}

// Unlock releases a key previously locked by the caller.
func (l *keyedLocker) Unlock(key repositories.EntityKey) {
	<-l.slot(key)
}
