// Package ledger implements the persisted ledger collections: ordered
// sequences of records mirrored to the record store in full on every
// mutation.
//
// Collections are small, and the store has no partial-write API, so
// each mutation re-persists the whole sequence. That guarantees
// read-after-write consistency within the process: in-memory state and
// the stored value never diverge after a completed mutation.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"arthika/internal/store"
)

// Record constrains a collection's element type. RecordID is the sole
// key for update and delete; Validate gates every Add.
type Record[T any] interface {
	*T
	RecordID() int64
	SetRecordID(int64)
	Validate() error
}

// Collection binds one record type to its key in the record store.
type Collection[T any, PT Record[T]] struct {
	store store.RecordStore
	key   string
	now   func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewCollection[T any, PT Record[T]](s store.RecordStore, key string) *Collection[T, PT] {
	return &Collection[T, PT]{
		store: s,
		key:   key,
		now:   time.Now,
	}
}

// Key returns the record-store key this collection persists under.
func (c *Collection[T, PT]) Key() string { return c.key }

// WithClock overrides the id clock, for tests.
func (c *Collection[T, PT]) WithClock(now func() time.Time) *Collection[T, PT] {
	c.now = now
	return c
}

// Load reads the collection from the store. A missing key, a storage
// error, or a value that is not a JSON array all degrade to an empty
// sequence; load never fails. First run and corrupted values look the
// same to callers.
func (c *Collection[T, PT]) Load(ctx context.Context) []T {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		slog.WarnContext(ctx, "Record store read failed, treating collection as empty",
			"key", c.key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.WarnContext(ctx, "Malformed stored collection, treating as empty",
			"key", c.key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Add validates the record, stamps a fresh id and appends it, then
// persists the whole sequence. Validation failures wrap
// core.ErrValidation and leave both memory and store untouched.
func (c *Collection[T, PT]) Add(ctx context.Context, rec T) (T, error) {
	if err := PT(&rec).Validate(); err != nil {
		var zero T
		return zero, err
	}

	PT(&rec).SetRecordID(c.nextID())

	items := append(c.Load(ctx), rec)
	if err := c.flush(ctx, items); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update applies mutate to the record with the given id and persists.
// An absent id is a no-op, reported through the bool: a stale list in
// one view may race a delete in another, and that must be tolerated.
func (c *Collection[T, PT]) Update(ctx context.Context, id int64, mutate func(PT)) (bool, error) {
	items := c.Load(ctx)
	found := false
	for i := range items {
		if PT(&items[i]).RecordID() == id {
			mutate(PT(&items[i]))
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if err := c.flush(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

// Remove filters out the record with the given id and persists the
// result. Removing an absent id is not an error.
func (c *Collection[T, PT]) Remove(ctx context.Context, id int64) error {
	items := c.Load(ctx)
	kept := items[:0]
	for _, it := range items {
		if PT(&it).RecordID() != id {
			kept = append(kept, it)
		}
	}
	return c.flush(ctx, kept)
}

// NextID hands out an id from the collection's sequence without adding
// a record. The paid-bill transition stamps its expense this way so the
// id space stays unique across both paths.
func (c *Collection[T, PT]) NextID() int64 { return c.nextID() }

// nextID returns the current Unix-millisecond timestamp, bumped past
// the previous id when two mutations land inside the same millisecond.
// Ids stay unique and monotonically non-decreasing within the process.
func (c *Collection[T, PT]) nextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Collection[T, PT]) flush(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("persist collection %q: %w", c.key, err)
	}
	return nil
}

// Encode marshals a snapshot the way flush persists it. The paid-bill
// transition uses this to hand both affected collections to a single
// atomic SetMulti.
func (c *Collection[T, PT]) Encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection %q: %w", c.key, err)
	}
	return raw, nil
}
