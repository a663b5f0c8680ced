// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import "github.com/pdiddy/lore-engine/pkg/types"

// BrokenReference is a relationship whose target is not in the index.
type BrokenReference struct {
	SourceID string             `json:"source_id"`
	TargetID string             `json:"target_id"`
	Type     types.RelationType `json:"relationship_type"`
}

// Statistics summarizes the built index and graph.
type Statistics struct {
	// TotalEntries is the number of indexed entries.
	TotalEntries int `json:"total_entries"`

	// Categories counts indexed entries per category. Categories with no
	// entries are absent.
	Categories map[types.Category]int `json:"categories"`

	// TotalRelationships counts every relationship declaration, including
	// those whose target does not exist.
	TotalRelationships int `json:"total_relationships"`

	// OrphanedEntries lists indexed entries with no incoming and no outgoing
	// edges, in index order.
	OrphanedEntries []string `json:"orphaned_entries"`

	// BrokenReferences lists relationships pointing at IDs absent from the
	// index, in edge insertion order.
	BrokenReferences []BrokenReference `json:"broken_references,omitempty"`
}

// Statistics computes a fresh summary of the current index and graph. It
// reflects the last build, not the store; call Refresh first to pick up
// external changes.
func (e *Engine) Statistics() Statistics {
	idx, g := e.snapshot()

	stats := Statistics{
		TotalEntries:       idx.len(),
		Categories:         make(map[types.Category]int),
		TotalRelationships: g.edgeCount(),
		OrphanedEntries:    []string{},
	}

	for _, id := range idx.order {
		ie := idx.byID[id]
		stats.Categories[ie.Entry.Category]++
		if g.inDegree(id) == 0 && g.outDegree(id) == 0 {
			stats.OrphanedEntries = append(stats.OrphanedEntries, id)
		}
	}

	for _, id := range g.order {
		for _, edge := range g.successors(id) {
			if _, ok := idx.get(edge.Target); !ok {
				stats.BrokenReferences = append(stats.BrokenReferences, BrokenReference{
					SourceID: edge.Source,
					TargetID: edge.Target,
					Type:     edge.Type,
				})
			}
		}
	}
	return stats
}
