// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import "github.com/pdiddy/lore-engine/pkg/types"

// RelatedEntry is a traversal hit: the entry reached, the edge it was
// reached through, and the depth at which it was first found.
type RelatedEntry struct {
	Entry types.Entry `json:"entry"`
	Edge  Edge        `json:"relationship"`
	Depth int         `json:"depth"`
}

// Related walks the relationship graph outward from entryID up to maxDepth
// hops (the configured default when maxDepth is zero), optionally keeping
// only edges of the given type. Depth 1 yields one result per qualifying
// outgoing edge, so parallel edges to the same target each appear. Deeper
// levels expand breadth-first and record each newly reached entry once, at
// the depth it was first found, which bounds traversal on cyclic graphs.
// An unknown entryID yields no results rather than an error.
func (e *Engine) Related(entryID string, relType types.RelationType, maxDepth int) []RelatedEntry {
	results := []RelatedEntry{}

	idx, g := e.snapshot()
	if !g.hasNode(entryID) {
		return results
	}
	if maxDepth <= 0 {
		maxDepth = e.cfg.MaxDepth
	}

	// reached tracks IDs already present among results. The start entry is
	// deliberately absent: a cycle may lead back to it once.
	reached := make(map[string]bool)
	var frontier []string

	for _, edge := range g.successors(entryID) {
		if relType != "" && edge.Type != relType {
			continue
		}
		ie, ok := idx.get(edge.Target)
		if !ok {
			continue
		}
		results = append(results, RelatedEntry{Entry: ie.Entry, Edge: edge, Depth: 1})
		if !reached[edge.Target] {
			reached[edge.Target] = true
			frontier = append(frontier, edge.Target)
		}
	}

	for depth := 2; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, edge := range g.successors(id) {
				if relType != "" && edge.Type != relType {
					continue
				}
				if reached[edge.Target] {
					continue
				}
				ie, ok := idx.get(edge.Target)
				if !ok {
					continue
				}
				reached[edge.Target] = true
				results = append(results, RelatedEntry{Entry: ie.Entry, Edge: edge, Depth: depth})
				next = append(next, edge.Target)
			}
		}
		frontier = next
	}
	return results
}
