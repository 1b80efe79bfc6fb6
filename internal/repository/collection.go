package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Record is anything stored in a collection
type Record interface {
	GetID() string
}

// Collection is an ordered list of records stored under one key.
// Every operation reads the whole list and writes the whole list back,
// holding mu so concurrent callers in this process never overwrite each other.
type Collection[T Record] struct {
	mu       sync.Mutex
	store    CollectionStore
	key      string
	defaults func() []T
}

// NewCollection creates a collection over the store. defaults may be nil.
func NewCollection[T Record](store CollectionStore, key string, defaults func() []T) *Collection[T] {
	return &Collection[T]{store: store, key: key, defaults: defaults}
}

// Key returns the storage key
func (c *Collection[T]) Key() string {
	return c.key
}

// List returns all records in insertion order, seeding defaults on first read
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list(ctx)
}

func (c *Collection[T]) list(ctx context.Context) ([]T, error) {
	raw, err := c.raw(ctx)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCollection, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns the record with the id, or nil if there is none
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetID() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Add appends a record
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.list(ctx)
	if err != nil {
		return err
	}
	for _, existing := range items {
		if existing.GetID() == item.GetID() {
			return fmt.Errorf("%w: %s %s", ErrDuplicateID, c.key, item.GetID())
		}
	}
	return c.save(ctx, append(items, item))
}

// Update replaces the record with the same id. Returns false without writing if there is none.
func (c *Collection[T]) Update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.list(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].GetID() == item.GetID() {
			items[i] = item
			return true, c.save(ctx, items)
		}
	}
	return false, nil
}

// Delete removes the record with the id. Returns false without writing if there is none.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.list(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, c.save(ctx, kept)
}

// ReplaceAll overwrites the collection with items
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	return c.save(ctx, items)
}

// Raw returns the stored document, seeding defaults on first read
func (c *Collection[T]) Raw(ctx context.Context) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw(ctx)
}

func (c *Collection[T]) raw(ctx context.Context) (json.RawMessage, error) {
	raw, found, err := c.store.Read(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if found && len(raw) > 0 {
		return raw, nil
	}

	var seed []T
	if c.defaults != nil {
		seed = c.defaults()
	}
	if len(seed) == 0 {
		return json.RawMessage("[]"), nil
	}

	payload, err := json.Marshal(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s defaults: %w", c.key, err)
	}
	if err := c.store.Write(ctx, c.key, payload); err != nil {
		return nil, fmt.Errorf("failed to seed %s: %w", c.key, err)
	}
	return payload, nil
}

// WriteRaw stores a document verbatim without checking record shape
func (c *Collection[T]) WriteRaw(ctx context.Context, payload json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeRaw(ctx, payload)
}

func (c *Collection[T]) writeRaw(ctx context.Context, payload json.RawMessage) error {
	if err := c.store.Write(ctx, c.key, payload); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	return c.writeRaw(ctx, payload)
}
