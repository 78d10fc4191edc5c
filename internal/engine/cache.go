package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// memoCache memoizes derived tables. Keys combine the table
// fingerprint with the operation name and its parameters, so a new
// table invalidates implicitly and identical recomputations are served
// from memory.
type memoCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func newMemoCache() *memoCache {
	return &memoCache{entries: make(map[string]any)}
}

// memoized returns the cached value for op, computing and storing it
// on first use. compute runs outside the lock: operations call each
// other (lift uses segment), and a duplicate computation under
// concurrency is harmless since results are pure.
func (e *Engine) memoized(op string, compute func() any) any {
	key := fmt.Sprintf("%016x:%s", e.table.Fingerprint(), op)

	e.memo.mu.Lock()
	if v, ok := e.memo.entries[key]; ok {
		e.memo.mu.Unlock()
		zap.L().Debug("engine: cache hit", zap.String("op", op))
		return v
	}
	e.memo.mu.Unlock()

	v := compute()

	e.memo.mu.Lock()
	e.memo.entries[key] = v
	e.memo.mu.Unlock()
	return v
}
