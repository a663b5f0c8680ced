// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// SearchOptions narrows and caps a search. Zero values mean no category
// filter, no tag filter, and the engine's configured result cap.
type SearchOptions struct {
	// Category excludes entries of any other category before scoring.
	Category types.Category

	// Tags excludes entries carrying none of these tags (any-of, not all-of).
	Tags []string

	// Limit caps the number of results returned.
	Limit int
}

// SearchResult pairs a matched entry with its relevance score. Scores are on
// a 0-100 scale; a perfect match on every component can exceed 100 because
// component weights above 1 survive the averaging.
type SearchResult struct {
	Entry types.Entry `json:"entry"`
	Score float64     `json:"score"`
}

// Search scores every indexed entry that survives the option filters against
// the query and returns the hits at or above the configured fuzzy threshold,
// sorted by descending score. Ties keep index order. An empty or
// whitespace-only query returns no results rather than scanning the corpus.
func (e *Engine) Search(query string, opts SearchOptions) []SearchResult {
	results := []SearchResult{}
	if strings.TrimSpace(query) == "" {
		return results
	}
	query = strings.ToLower(query)

	idx, _ := e.snapshot()
	for _, id := range idx.order {
		ie := idx.byID[id]

		if opts.Category != "" && ie.Entry.Category != opts.Category {
			continue
		}
		if len(opts.Tags) > 0 && !ie.Entry.HasAnyTag(opts.Tags) {
			continue
		}

		score := relevance(query, ie)
		if score < e.cfg.FuzzyThreshold*100 {
			continue
		}

		entry := ie.Entry
		if !e.cfg.IncludeRelationships {
			entry.Relationships = nil
		}
		results = append(results, SearchResult{Entry: entry, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = e.cfg.MaxResults
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// relevance computes the weighted mean of the per-field similarity scores,
// each on a 0-100 scale: name (partial match, weight 2.0), description
// (whole-string, 1.5), each tag (whole-string, 1.2), and the full searchable
// text (partial, 1.0). The divisor is the number of terms produced, so an
// entry without tags is not penalized for the missing terms.
func relevance(query string, ie IndexedEntry) float64 {
	var sum float64
	terms := 0

	sum += float64(fuzzy.PartialRatio(query, strings.ToLower(ie.Entry.Name))) * 2.0
	terms++

	sum += float64(fuzzy.Ratio(query, strings.ToLower(ie.Entry.Description))) * 1.5
	terms++

	for _, tag := range ie.Entry.Tags {
		sum += float64(fuzzy.Ratio(query, strings.ToLower(tag))) * 1.2
		terms++
	}

	sum += float64(fuzzy.PartialRatio(query, ie.Text))
	terms++

	return sum / float64(terms)
}
