package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

type validator interface {
	Validate() error
}

// Cache is a process-wide, lazily loaded copy of one JSON document.
// Documents implementing Validate() error are checked on load and save.
type Cache[T any] struct {
	source Source

	mu     sync.RWMutex
	doc    T
	loaded bool
}

func NewCache[T any](source Source) *Cache[T] {
	return &Cache[T]{source: source}
}

// Load returns the cached document, reading it from the source on first use.
func (c *Cache[T]) Load(ctx context.Context) (T, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.doc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.doc, nil
	}

	var doc T
	data, err := c.source.Read(ctx)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse %s: %w", c.source.Name(), err)
	}
	if err := validate(doc); err != nil {
		return doc, fmt.Errorf("invalid document %s: %w", c.source.Name(), err)
	}

	c.doc, c.loaded = doc, true
	slog.Info("Document loaded",
		slog.String("type", "sys"),
		slog.String("source", c.source.Name()),
		slog.Int("bytes", len(data)),
	)
	return doc, nil
}

// Save writes doc to the source and then replaces the cached copy.
func (c *Cache[T]) Save(ctx context.Context, doc T) error {
	if err := validate(doc); err != nil {
		return fmt.Errorf("refusing to save invalid document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.source.Name(), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.source.Write(ctx, data); err != nil {
		return err
	}
	c.doc, c.loaded = doc, true
	return nil
}

// Current returns the cached document, or the zero value before the first Load.
func (c *Cache[T]) Current() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc
}

func validate(doc any) error {
	if v, ok := doc.(validator); ok {
		return v.Validate()
	}
	return nil
}
