// Package store keeps each top-level collection as a JSON document under a
// stable key. Values load once with a fallback default and write through on
// every Set.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/yeremiapane/enterprise-pos/utils"
)

// ErrNotFound is returned by a Backend when nothing is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is the durable medium behind persisted values.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Persisted holds the live value of one collection.
type Persisted[T any] struct {
	key     string
	backend Backend

	// writeMu orders writes so the backend sees them in memory order.
	writeMu sync.Mutex
	mu      sync.RWMutex
	value   T
}

// Open loads the value stored under key. A missing or unreadable value
// falls back to def.
func Open[T any](ctx context.Context, backend Backend, key string, def T) *Persisted[T] {
	p := &Persisted[T]{key: key, backend: backend, value: def}

	raw, err := backend.Load(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		utils.InfoLogger.Debugf("store: %s not found, using default", key)
		return p
	case err != nil:
		utils.InfoLogger.Warnf("store: load %s failed, using default: %v", key, err)
		return p
	}

	var loaded T
	if err := json.Unmarshal(raw, &loaded); err != nil {
		utils.InfoLogger.Warnf("store: %s is corrupt, using default: %v", key, err)
		return p
	}
	p.value = loaded
	return p
}

func (p *Persisted[T]) Key() string {
	return p.key
}

// Get returns the current value. Slices and maps are shared with the
// store, so callers copy before mutating.
func (p *Persisted[T]) Get() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set replaces the value and writes it through to the backend. Write
// failures are logged and swallowed; the in-memory value stays current.
func (p *Persisted[T]) Set(ctx context.Context, value T) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	p.value = value
	p.mu.Unlock()

	p.save(ctx, value)
}

// Update applies fn to the current value and stores the result. fn must not
// call back into p.
func (p *Persisted[T]) Update(ctx context.Context, fn func(T) T) T {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	next := fn(p.value)
	p.value = next
	p.mu.Unlock()

	p.save(ctx, next)
	return next
}

func (p *Persisted[T]) save(ctx context.Context, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		utils.ErrorLogger.Printf("store: encode %s: %v", p.key, err)
		return
	}
	if err := p.backend.Save(ctx, p.key, raw); err != nil {
		utils.ErrorLogger.Printf("store: save %s: %v", p.key, err)
	}
}
