package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Collection is a named, ordered sequence of records persisted as a single
// JSON document of the form {"<name>": [ ... ]}. Every mutation rewrites the
// whole file. A per-collection mutex serializes read-modify-write sequences,
// so concurrent mutations cannot lose each other's updates.
type Collection[T any] struct {
	name string
	path string
	mu   sync.Mutex
}

// NewCollection opens (or creates) the collection named name under dir.
// If the backing file does not exist it is created pre-seeded with an
// empty collection.
func NewCollection[T any](dir, name string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	c := &Collection[T]{
		name: name,
		path: filepath.Join(dir, name+".json"),
	}
	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		if err := c.writeLocked(nil); err != nil {
			return nil, fmt.Errorf("failed to seed collection %s: %w", name, err)
		}
	}
	return c, nil
}

// Read returns all records currently stored, in insertion order. A missing,
// empty, unreadable, or malformed file reads as an empty collection; stored
// data that is actually valid is never discarded.
func (c *Collection[T]) Read() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLocked()
}

// Update runs fn on the current records under the collection lock and
// persists whatever fn returns. If fn returns an error nothing is written.
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := fn(c.readLocked())
	if err != nil {
		return err
	}
	return c.writeLocked(records)
}

func (c *Collection[T]) readLocked() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return []T{}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return []T{}
	}

	raw, ok := doc[c.name]
	if !ok {
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func (c *Collection[T]) writeLocked(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(map[string][]T{c.name: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", c.name, err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", c.name, err)
	}
	return nil
}
