/*
store.go - Collection store: single source of truth for one entity type

PURPOSE:
  Holds the authoritative in-memory list of entities for one domain, plus
  the currently-selected entity and loading/error flags for callers that
  render list/detail views.

SNAPSHOT SEMANTICS:
  Every getter returns clones; every mutation is read-modify-write at
  entity granularity through Update, which applies the caller's function
  to a clone and commits only on success. Readers can never observe a
  partial mutation and cannot corrupt the store without going through a
  setter.

CONCURRENCY:
  The intended deployment is a single interactive admin session, but the
  store is still guarded by a RWMutex and keeps a monotonically increasing
  per-entity version for optimistic checks, so concurrent clients cannot
  interleave a clone-and-replace cycle.

SEE ALSO:
  - filter.go: operates over List() snapshots
  - aggregate.go: operates over List() snapshots
*/
package lifecycle

import (
	"fmt"
	"sync"
)

// Entity is implemented by every top-level domain record. Clone must be a
// deep copy: child line items, notes and attachments must not share
// backing storage with the original.
type Entity[E any] interface {
	EntityID() string
	Clone() E
}

// Collection owns the full list of one entity type.
type Collection[E Entity[E]] struct {
	mu       sync.RWMutex
	kind     string
	items    []E
	versions map[string]int64
	selected *E
	seq      int
	loading  bool
	lastErr  string
}

// NewCollection creates a store seeded with the given entities. seq is the
// next number the id sequence will issue.
func NewCollection[E Entity[E]](kind string, seed []E, seq int) *Collection[E] {
	c := &Collection[E]{
		kind:     kind,
		versions: make(map[string]int64, len(seed)),
		seq:      seq,
	}
	for _, e := range seed {
		c.items = append(c.items, e.Clone())
		c.versions[e.EntityID()] = 1
	}
	return c
}

// Kind returns the entity kind name used in errors ("purchase order", ...).
func (c *Collection[E]) Kind() string { return c.kind }

// List returns a cloned snapshot of the full list.
func (c *Collection[E]) List() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]E, len(c.items))
	for i, e := range c.items {
		out[i] = e.Clone()
	}
	return out
}

func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns a clone of the entity with the given id.
func (c *Collection[E]) Get(id string) (E, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.items {
		if e.EntityID() == id {
			return e.Clone(), nil
		}
	}
	var zero E
	return zero, &NotFoundError{Kind: c.kind, ID: id}
}

// Version returns the optimistic version counter for id, 0 if absent.
func (c *Collection[E]) Version(id string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[id]
}

// Insert adds a new entity at the front of the list, matching list views
// that show newest first.
func (c *Collection[E]) Insert(e E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]E{e.Clone()}, c.items...)
	c.versions[e.EntityID()] = 1
}

// Update applies fn to a clone of the entity and commits the result only
// when fn succeeds. fn receives a clone, so validation failures leave the
// stored entity untouched.
func (c *Collection[E]) Update(id string, fn func(E) (E, error)) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.items {
		if e.EntityID() != id {
			continue
		}
		updated, err := fn(e.Clone())
		if err != nil {
			var zero E
			return zero, err
		}
		c.items[i] = updated.Clone()
		c.versions[id]++
		if c.selected != nil && (*c.selected).EntityID() == id {
			sel := updated.Clone()
			c.selected = &sel
		}
		return updated, nil
	}
	var zero E
	return zero, &NotFoundError{Kind: c.kind, ID: id}
}

// Remove deletes the entity with the given id.
func (c *Collection[E]) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.items {
		if e.EntityID() != id {
			continue
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		delete(c.versions, id)
		if c.selected != nil && (*c.selected).EntityID() == id {
			c.selected = nil
		}
		return nil
	}
	return &NotFoundError{Kind: c.kind, ID: id}
}

// SetAll replaces the list wholesale. Versions of surviving ids are kept.
func (c *Collection[E]) SetAll(items []E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make(map[string]int64, len(items))
	c.items = make([]E, len(items))
	for i, e := range items {
		c.items[i] = e.Clone()
		if v, ok := c.versions[e.EntityID()]; ok {
			next[e.EntityID()] = v + 1
		} else {
			next[e.EntityID()] = 1
		}
	}
	c.versions = next
	c.selected = nil
}

// Select stores a clone of the entity with the given id as "selected".
func (c *Collection[E]) Select(id string) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.items {
		if e.EntityID() == id {
			sel := e.Clone()
			c.selected = &sel
			return sel.Clone(), nil
		}
	}
	var zero E
	return zero, &NotFoundError{Kind: c.kind, ID: id}
}

// Selected returns a clone of the selected entity, if any.
func (c *Collection[E]) Selected() (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		var zero E
		return zero, false
	}
	return (*c.selected).Clone(), true
}

func (c *Collection[E]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// NextID issues the next human-readable sequence id, e.g.
// NextID("PO-%d-%04d", 2025) -> "PO-2025-0457".
func (c *Collection[E]) NextID(format string, year int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := fmt.Sprintf(format, year, c.seq)
	c.seq++
	return id
}

// Seq returns the next number the id sequence will issue. Persistence layers
// use it to save the counter alongside the entity list.
func (c *Collection[E]) Seq() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq
}

// =============================================================================
// TRANSIENT UI STATE - loading/error flags, not concurrency control
// =============================================================================

func (c *Collection[E]) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *Collection[E]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetErr records the last operation error message for view feedback; empty
// string clears it.
func (c *Collection[E]) SetErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = msg
}

func (c *Collection[E]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
