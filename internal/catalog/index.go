package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"autoparts-service/internal/models"
)

// Loader fetches the full part catalog from the backing source.
type Loader interface {
	LoadParts(ctx context.Context) ([]models.Part, error)
}

// Index is an in-memory read-through cache of the part catalog with
// substring search. It keeps the last known good snapshot: a failed
// reload leaves the previous data in place rather than emptying the
// index. Concurrent reloads are last-write-wins.
type Index struct {
	loader Loader

	mu     sync.RWMutex
	parts  []models.Part
	loaded bool
}

// NewIndex creates an empty index over the given loader
func NewIndex(loader Loader) *Index {
	return &Index{loader: loader}
}

// Reload fetches the full catalog and replaces the cached snapshot. On
// failure the previous snapshot stays untouched and the error is
// returned.
func (ix *Index) Reload(ctx context.Context) error {
	parts, err := ix.loader.LoadParts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	ix.mu.Lock()
	ix.parts = parts
	ix.loaded = true
	ix.mu.Unlock()
	return nil
}

// Loaded reports whether the index holds a snapshot. A legitimately
// empty catalog still counts as loaded; only a never-successful reload
// leaves the index cold.
func (ix *Index) Loaded() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.loaded
}

// Snapshot returns the current cached parts
func (ix *Index) Snapshot() []models.Part {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]models.Part, len(ix.parts))
	copy(out, ix.parts)
	return out
}

// Find resolves a part by ID against the current snapshot
func (ix *Index) Find(id string) (*models.Part, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for i := range ix.parts {
		if ix.parts[i].ID == id {
			part := ix.parts[i]
			return &part, true
		}
	}
	return nil, false
}

// Search returns all parts where query is a case-insensitive substring
// of the name, part number, category or manufacturer. An empty query
// returns the full set; an unmatched query returns an empty slice,
// never an error.
func (ix *Index) Search(query string) []models.Part {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return ix.Snapshot()
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]models.Part, 0)
	for _, part := range ix.parts {
		if matchesPart(part, query) {
			out = append(out, part)
		}
	}
	return out
}

func matchesPart(part models.Part, query string) bool {
	for _, field := range []string{part.Name, part.PartNumber, part.Category, part.Manufacturer} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
