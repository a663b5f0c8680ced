// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// Suggestion pairs an entry with its content similarity to the source entry,
// on a 0-1 scale.
type Suggestion struct {
	Entry      types.Entry `json:"entry"`
	Similarity float64     `json:"similarity_score"`
}

// Suggest ranks every other indexed entry by content similarity to entryID
// and returns those scoring strictly above the configured minimum, sorted by
// descending similarity and capped at limit (default 5). An unknown entryID
// yields no results rather than an error.
func (e *Engine) Suggest(entryID string, limit int) []Suggestion {
	suggestions := []Suggestion{}

	idx, _ := e.snapshot()
	source, ok := idx.get(entryID)
	if !ok {
		return suggestions
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	for _, id := range idx.order {
		if id == entryID {
			continue
		}
		other := idx.byID[id]
		score := similarity(source, other)
		if score > e.cfg.MinSimilarity {
			suggestions = append(suggestions, Suggestion{Entry: other.Entry, Similarity: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// similarity combines tag overlap and text similarity, each on a 0-1 scale:
// the Jaccard index of the two tag sets carries weight 2.0 and is skipped
// only when neither entry has tags; whole-string similarity of the two
// searchable texts carries weight 1.0. The result is the mean of the
// components actually computed.
func similarity(a, b IndexedEntry) float64 {
	var sum float64
	terms := 0

	if overlap, ok := jaccard(a.Entry.Tags, b.Entry.Tags); ok {
		sum += overlap * 2.0
		terms++
	}

	sum += float64(fuzzy.Ratio(a.Text, b.Text)) / 100.0
	terms++

	return sum / float64(terms)
}

// jaccard returns the intersection-over-union of the two tag slices as sets.
// The second return is false when both sets are empty and the measure is
// undefined.
func jaccard(a, b []string) (float64, bool) {
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 0, false
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union), true
}
