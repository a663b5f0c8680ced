// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lore builds an in-memory index and relationship graph over a
// corpus of lore entries and answers fuzzy search, relationship traversal,
// and similarity queries against them. The index is rebuilt in full from the
// entry source on demand; queries read a consistent snapshot and never
// mutate the source.
package lore

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// Defaults applied when the corresponding EngineConfig field is zero.
const (
	DefaultFuzzyThreshold = 0.6
	DefaultMaxResults     = 10
	DefaultMaxDepth       = 1
	DefaultMinSimilarity  = 0.3
	DefaultSuggestLimit   = 5
)

// Source supplies persisted entries one category at a time, keyed by entry
// ID. A missing category must yield an empty map, not an error; errors are
// reserved for unreadable data and cause that category to contribute zero
// entries to the build.
type Source interface {
	Entries(category types.Category) (map[string]types.Entry, error)
}

// IndexedEntry pairs an entry with the searchable text derived from it.
// Indexed entries are created fresh on every build and never edited in place.
type IndexedEntry struct {
	Entry types.Entry
	Text  string
}

// BuildStats describes the outcome of the most recent index build.
type BuildStats struct {
	// Entries is the number of entries indexed.
	Entries int `json:"entries"`

	// Skipped counts malformed entries left out of the index.
	Skipped int `json:"skipped"`

	// Edges is the number of relationship edges added to the graph.
	Edges int `json:"edges"`

	// Elapsed is the wall time the build took.
	Elapsed time.Duration `json:"elapsed"`

	// BuiltAt is when the build finished.
	BuiltAt time.Time `json:"built_at"`
}

// index maps entry IDs to indexed entries. IDs are also kept as an ordered
// slice (canonical category order, then sorted by ID within a category) so
// that iteration, and therefore result ordering on score ties, is identical
// across rebuilds of the same corpus.
type index struct {
	byID  map[string]IndexedEntry
	order []string
}

func newIndex() *index {
	return &index{byID: make(map[string]IndexedEntry)}
}

func (ix *index) add(ie IndexedEntry) {
	if _, exists := ix.byID[ie.Entry.ID]; !exists {
		ix.order = append(ix.order, ie.Entry.ID)
	}
	ix.byID[ie.Entry.ID] = ie
}

func (ix *index) get(id string) (IndexedEntry, bool) {
	ie, ok := ix.byID[id]
	return ie, ok
}

func (ix *index) len() int { return len(ix.byID) }

// Engine owns the index and relationship graph. All query methods operate on
// the structures from the last completed build; Refresh swaps in freshly
// built replacements under an exclusive lock so concurrent readers see either
// the old snapshot or the new one, never a partial rebuild.
type Engine struct {
	cfg    types.EngineConfig
	source Source
	log    *zap.Logger

	mu    sync.RWMutex
	idx   *index
	graph *graph
	built BuildStats
}

// NewEngine builds the index and graph from source and returns the engine.
// Zero config fields fall back to the package defaults. A nil logger
// disables logging.
func NewEngine(cfg types.EngineConfig, source Source, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = DefaultMinSimilarity
	}

	e := &Engine{cfg: cfg, source: source, log: log}
	e.Refresh()
	return e
}

// Refresh rebuilds the index and graph from the current source snapshot.
// Unreadable categories contribute zero entries and malformed entries are
// skipped, so a refresh never fails; it can simply be invoked again after
// the source is repaired.
func (e *Engine) Refresh() {
	idx, g, stats := e.build()

	e.mu.Lock()
	e.idx, e.graph, e.built = idx, g, stats
	e.mu.Unlock()

	e.log.Info("index rebuilt",
		zap.Int("entries", stats.Entries),
		zap.Int("edges", stats.Edges),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("elapsed", stats.Elapsed))
}

func (e *Engine) build() (*index, *graph, BuildStats) {
	start := time.Now()
	idx := newIndex()
	g := newGraph()
	var stats BuildStats

	for _, cat := range types.Categories {
		entries, err := e.source.Entries(cat)
		if err != nil {
			e.log.Warn("category unavailable, contributing zero entries",
				zap.String("category", string(cat)), zap.Error(err))
			continue
		}

		ids := make([]string, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			entry := entries[id]
			entry.ID = id // the map key is authoritative

			if entry.Name == "" || !entry.Category.Valid() {
				stats.Skipped++
				e.log.Warn("skipping malformed entry",
					zap.String("id", id), zap.String("category", string(cat)))
				continue
			}

			idx.add(IndexedEntry{Entry: entry, Text: SearchableText(entry)})
			g.addNode(id)

			for _, rel := range entry.Relationships {
				if rel.TargetID == "" {
					stats.Skipped++
					e.log.Warn("skipping relationship without target",
						zap.String("id", id))
					continue
				}
				strength := rel.Strength
				if strength == 0 {
					strength = types.DefaultStrength
				}
				g.addEdge(Edge{
					Source:      id,
					Target:      rel.TargetID,
					Type:        rel.Type,
					Strength:    strength,
					Description: rel.Description,
				})
				stats.Edges++
			}
			stats.Entries++
		}
	}

	stats.Elapsed = time.Since(start)
	stats.BuiltAt = time.Now()
	return idx, g, stats
}

// snapshot returns the structures from the last completed build. They are
// immutable once built, so callers may read them without further locking.
func (e *Engine) snapshot() (*index, *graph) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.idx, e.graph
}

// LastBuild reports statistics about the most recent index build.
func (e *Engine) LastBuild() BuildStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.built
}

// Entry returns the indexed entry with the given ID, if present.
func (e *Engine) Entry(id string) (types.Entry, bool) {
	idx, _ := e.snapshot()
	ie, ok := idx.get(id)
	return ie.Entry, ok
}

// Entries returns every indexed entry in canonical order: categories in
// their fixed order, IDs sorted within each category.
func (e *Engine) Entries() []types.Entry {
	idx, _ := e.snapshot()
	out := make([]types.Entry, 0, idx.len())
	for _, id := range idx.order {
		out = append(out, idx.byID[id].Entry)
	}
	return out
}
