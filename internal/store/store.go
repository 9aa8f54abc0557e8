// Package store implements the persisted collection: an in-memory
// ordered list of entities synchronized with one durable slot. Every
// mutation rewrites the whole collection to the slot; at single-user
// scale the O(n) write is a deliberate simplicity tradeoff.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hbarnes/penny/internal/storage"
)

// Entity is anything the collection can hold. Identifiers are assigned
// by the owning service before Add and are immutable afterwards.
type Entity interface {
	EntityID() uuid.UUID
}

// Collection is an ordered set of entities backed by a durable slot.
// Methods are safe for concurrent use; the HTTP server is not the
// single-threaded event loop the dashboard UI was.
type Collection[T Entity] struct {
	key  string
	slot storage.Slot
	less func(a, b T) bool

	mu    sync.Mutex
	items []T
	err   error
}

// New returns an empty collection bound to the slot key. Call Load
// before use; ordering follows less after every insert.
func New[T Entity](slot storage.Slot, key string, less func(a, b T) bool) *Collection[T] {
	return &Collection[T]{
		key:  key,
		slot: slot,
		less: less,
	}
}

// Load reads the slot into memory. A missing slot is a first run and
// yields an empty collection. A read or decode failure also yields an
// empty collection with the error recorded on the Err flag: startup
// never aborts over a corrupt slot.
func (c *Collection[T]) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil
	c.items = nil

	data, err := c.slot.Read(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return
		}

		slog.Error("failed to load collection", "key", c.key, "error", err)
		c.err = fmt.Errorf("loading %s: %w", c.key, err)

		return
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Error("corrupt collection data, resetting", "key", c.key, "error", err)
		c.err = fmt.Errorf("decoding %s: %w", c.key, err)

		return
	}

	sort.SliceStable(items, func(i, j int) bool { return c.less(items[i], items[j]) })
	c.items = items
}

// Add inserts the entity, restores the ordering rule and persists the
// collection. If persisting fails the entity is not retained and the
// error is returned so the caller can surface it.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil

	prev := c.items
	next := make([]T, 0, len(prev)+1)
	next = append(next, prev...)
	next = append(next, item)
	sort.SliceStable(next, func(i, j int) bool { return c.less(next[i], next[j]) })

	c.items = next

	if err := c.persist(ctx); err != nil {
		c.items = prev
		c.err = err

		return err
	}

	return nil
}

// Update applies patch to the entity with the given id and persists.
// An unknown id is a silent no-op, not an error.
func (c *Collection[T]) Update(ctx context.Context, id uuid.UUID, patch func(T) T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil

	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}

	prev := c.items[idx]
	c.items[idx] = patch(prev)

	if err := c.persist(ctx); err != nil {
		c.items[idx] = prev
		c.err = err

		return err
	}

	return nil
}

// Remove deletes the entity with the given id and persists. Absent ids
// are a no-op.
func (c *Collection[T]) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil

	idx := c.indexOf(id)
	if idx < 0 {
		return nil
	}

	prev := c.items
	next := make([]T, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	c.items = next

	if err := c.persist(ctx); err != nil {
		c.items = prev
		c.err = err

		return err
	}

	return nil
}

// ClearAll empties the collection and deletes the slot entirely, so a
// later Load behaves as a first run.
func (c *Collection[T]) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.items
	c.err = nil
	c.items = nil

	if err := c.slot.Delete(ctx, c.key); err != nil {
		slog.Error("failed to clear collection", "key", c.key, "error", err)
		c.items = prev
		c.err = err

		return err
	}

	return nil
}

// Items returns a copy of the collection in order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)

	return out
}

// Get returns the entity with the given id, if present.
func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(id); idx >= 0 {
		return c.items[idx], true
	}

	var zero T

	return zero, false
}

// Len returns the current collection size.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Err reports the storage error recorded by the most recent operation,
// or nil. Load failures surface here rather than aborting startup.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

func (c *Collection[T]) indexOf(id uuid.UUID) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}

	return -1
}

func (c *Collection[T]) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}

	if err := c.slot.Write(ctx, c.key, data); err != nil {
		slog.Error("failed to persist collection", "key", c.key, "error", err)
		return fmt.Errorf("persisting %s: %w", c.key, err)
	}

	return nil
}
