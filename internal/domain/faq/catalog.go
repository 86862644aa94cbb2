package faq

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrEmptyReload is returned when a reload produced no entries and the
// previous snapshot was kept.
var ErrEmptyReload = errors.New("catalog reload produced no entries")

// Reloader re-reads the catalog on demand.
type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

// Catalog fronts a CatalogSource with an optional shared in-memory snapshot.
// When caching is disabled every Entries call reads the source again.
type Catalog struct {
	source CatalogSource
	cache  bool
	logger *slog.Logger

	mu      sync.RWMutex
	entries []Entry
}

// NewCatalog wraps source. The snapshot is filled lazily on first use.
func NewCatalog(source CatalogSource, cache bool, logger *slog.Logger) *Catalog {
	return &Catalog{
		source: source,
		cache:  cache,
		logger: logger.With("component", "faq.catalog"),
	}
}

// Entries implements CatalogSource. Callers must treat the slice as read-only.
func (c *Catalog) Entries(ctx context.Context) []Entry {
	if !c.cache {
		return c.source.Entries(ctx)
	}

	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()
	if len(entries) > 0 {
		return entries
	}

	// empty snapshots are never kept so a catalog that appears later is picked up
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		c.entries = c.source.Entries(ctx)
		if len(c.entries) > 0 {
			c.logger.Info("faq catalog loaded", "entries", len(c.entries))
		}
	}
	return c.entries
}

// Reload re-reads the source and swaps the snapshot. An empty result never
// replaces a non-empty snapshot.
func (c *Catalog) Reload(ctx context.Context) (int, error) {
	fresh := c.source.Entries(ctx)
	if !c.cache {
		return len(fresh), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(fresh) == 0 && len(c.entries) > 0 {
		c.logger.Warn("faq catalog reload empty, keeping previous snapshot", "entries", len(c.entries))
		return len(c.entries), ErrEmptyReload
	}
	c.entries = fresh
	c.logger.Info("faq catalog reloaded", "entries", len(fresh))
	return len(fresh), nil
}

var (
	_ CatalogSource = (*Catalog)(nil)
	_ Reloader      = (*Catalog)(nil)
)
