package costing

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/supplements/backend/internal/domain/shared"
)

// ProductLocker serializes costing work per product inside one process.
// The database row lock taken in the transaction covers other processes.
type ProductLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*productLock
}

type productLock struct {
	sem  chan struct{}
	refs int
}

// NewProductLocker creates an empty locker
func NewProductLocker() *ProductLocker {
	return &ProductLocker{locks: make(map[uuid.UUID]*productLock)}
}

// Lock acquires every product in ascending ID order and returns the release
// function. If ctx ends while waiting, locks already taken are released and
// a CONCURRENCY_CONFLICT error is returned.
func (l *ProductLocker) Lock(ctx context.Context, productIDs ...uuid.UUID) (func(), error) {
	ordered := sortedUnique(productIDs)
	acquired := make([]uuid.UUID, 0, len(ordered))
	for _, id := range ordered {
		if err := l.acquire(ctx, id); err != nil {
			l.release(acquired)
			return nil, shared.NewDomainError(shared.CodeConcurrencyConflict,
				"timed out waiting for product "+id.String())
		}
		acquired = append(acquired, id)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(acquired) })
	}, nil
}

func (l *ProductLocker) acquire(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	pl, ok := l.locks[id]
	if !ok {
		pl = &productLock{sem: make(chan struct{}, 1)}
		l.locks[id] = pl
	}
	pl.refs++
	l.mu.Unlock()

	select {
	case pl.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.unref(id, pl)
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *ProductLocker) release(ids []uuid.UUID) {
	for i := len(ids) - 1; i >= 0; i-- {
		l.mu.Lock()
		pl := l.locks[ids[i]]
		<-pl.sem
		l.unref(ids[i], pl)
		l.mu.Unlock()
	}
}

// unref must be called with l.mu held
func (l *ProductLocker) unref(id uuid.UUID, pl *productLock) {
	pl.refs--
	if pl.refs == 0 {
		delete(l.locks, id)
	}
}

// held returns the number of products with holders or waiters
func (l *ProductLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
