package lore

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// --- test helpers ---

// fakeSource serves entries from memory, with optional per-category failures.
// Tests mutate data between refreshes to simulate external store writes.
type fakeSource struct {
	data map[types.Category]map[string]types.Entry
	fail map[types.Category]error
}

func (s *fakeSource) Entries(cat types.Category) (map[string]types.Entry, error) {
	if err := s.fail[cat]; err != nil {
		return nil, err
	}
	return s.data[cat], nil
}

// scenarioSource is a three-entry corpus: a hero located in a city, and a
// villain with no relationships at all.
func scenarioSource() *fakeSource {
	return &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryCharacters: {
				"hero": {
					Name:        "Tharos the Wise",
					Category:    types.CategoryCharacters,
					Description: "An archmage who guards the old ways.",
					Tags:        []string{"mage", "zeloria"},
					Relationships: []types.Relationship{
						{TargetID: "city", Type: types.RelLocatedIn, Strength: 8},
					},
				},
				"villain": {
					Name:        "Morvane",
					Category:    types.CategoryCharacters,
					Description: "A renegade sorcerer hunting forbidden relics.",
					Tags:        []string{"mage"},
				},
			},
			types.CategoryLocations: {
				"city": {
					Name:        "Zeloria",
					Category:    types.CategoryLocations,
					Description: "The walled capital of the eastern reaches.",
					Tags:        []string{"capital"},
				},
			},
		},
		fail: map[types.Category]error{},
	}
}

func scenarioEngine(t *testing.T) *Engine {
	t.Helper()
	// A low threshold keeps weak matches visible so ordering can be asserted.
	return NewEngine(types.EngineConfig{FuzzyThreshold: 0.2}, scenarioSource(), nil)
}

func findResult(results []SearchResult, id string) (SearchResult, bool) {
	for _, r := range results {
		if r.Entry.ID == id {
			return r, true
		}
	}
	return SearchResult{}, false
}

// --- searchable text ---

func TestSearchableText(t *testing.T) {
	e := types.Entry{
		Name:        "Ka",
		Description: "Dee",
		Subcategory: "Sub",
		Tags:        []string{"a", "b"},
		CustomFields: map[string]types.Value{
			"zeta":  types.ListValue("X", "Y"),
			"alpha": types.NumberValue(3),
			"mid":   types.BoolValue(true),
		},
	}

	got := SearchableText(e)
	want := "ka dee a b sub 3 true x y"
	if got != want {
		t.Errorf("SearchableText = %q, want %q", got, want)
	}

	// Stable across calls: custom field names are walked in sorted order.
	if again := SearchableText(e); again != got {
		t.Errorf("SearchableText not stable: %q then %q", got, again)
	}
}

func TestSearchableTextDropsEmptyParts(t *testing.T) {
	e := types.Entry{Name: "Solo"}
	if got := SearchableText(e); got != "solo" {
		t.Errorf("SearchableText = %q, want %q", got, "solo")
	}
}

// --- search ---

func TestSearchEmptyQuery(t *testing.T) {
	engine := scenarioEngine(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		if got := engine.Search(query, SearchOptions{}); len(got) != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", query, len(got))
		}
	}
}

func TestSearchScenarioRanking(t *testing.T) {
	engine := scenarioEngine(t)

	results := engine.Search("mage", SearchOptions{})

	hero, ok := findResult(results, "hero")
	if !ok {
		t.Fatal("hero missing from results")
	}
	villain, ok := findResult(results, "villain")
	if !ok {
		t.Fatal("villain missing from results")
	}
	city, ok := findResult(results, "city")
	if !ok {
		t.Fatal("city missing from results at low threshold")
	}

	// Both tag matches must outrank the entry that matches on nothing.
	if hero.Score <= city.Score {
		t.Errorf("hero score %.1f not above city score %.1f", hero.Score, city.Score)
	}
	if villain.Score <= city.Score {
		t.Errorf("villain score %.1f not above city score %.1f", villain.Score, city.Score)
	}
}

func TestSearchScoresSortedAndAboveThreshold(t *testing.T) {
	cfg := types.EngineConfig{FuzzyThreshold: 0.2}
	engine := NewEngine(cfg, scenarioSource(), nil)

	results := engine.Search("mage", SearchOptions{})
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for i, r := range results {
		if r.Score < cfg.FuzzyThreshold*100 {
			t.Errorf("result %s score %.1f below threshold %.1f", r.Entry.ID, r.Score, cfg.FuzzyThreshold*100)
		}
		if i > 0 && results[i-1].Score < r.Score {
			t.Errorf("results not sorted: %.1f before %.1f", results[i-1].Score, r.Score)
		}
	}
}

func TestSearchThresholdExcludesWeakMatches(t *testing.T) {
	source := &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryConcepts: {
				"alpha": {
					Name:        "Dragonfire",
					Category:    types.CategoryConcepts,
					Description: "Dragonfire",
					Tags:        []string{"dragonfire"},
				},
				"beta": {
					Name:        "Quiet Meadow",
					Category:    types.CategoryConcepts,
					Description: "Rolling hills under soft rain.",
					Tags:        []string{"pasture"},
				},
			},
		},
	}
	engine := NewEngine(types.EngineConfig{FuzzyThreshold: 0.6}, source, nil)

	results := engine.Search("dragonfire", SearchOptions{})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	if results[0].Entry.ID != "alpha" {
		t.Errorf("got %s, want alpha", results[0].Entry.ID)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	engine := scenarioEngine(t)

	results := engine.Search("mage", SearchOptions{Category: types.CategoryCharacters})
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for _, r := range results {
		if r.Entry.Category != types.CategoryCharacters {
			t.Errorf("result %s has category %s, want characters", r.Entry.ID, r.Entry.Category)
		}
	}
	if _, ok := findResult(results, "city"); ok {
		t.Error("city returned despite category filter")
	}
}

func TestSearchTagFilter(t *testing.T) {
	engine := scenarioEngine(t)

	results := engine.Search("mage", SearchOptions{Tags: []string{"capital"}})
	for _, r := range results {
		if !r.Entry.HasTag("capital") {
			t.Errorf("result %s lacks the filter tag", r.Entry.ID)
		}
	}
	if _, ok := findResult(results, "city"); !ok {
		t.Error("city missing despite matching tag filter")
	}

	// Any-of semantics: one of the requested tags is enough.
	results = engine.Search("mage", SearchOptions{Tags: []string{"zeloria", "capital"}})
	if _, ok := findResult(results, "hero"); !ok {
		t.Error("hero missing despite matching one of the filter tags")
	}
	if _, ok := findResult(results, "villain"); ok {
		t.Error("villain returned despite sharing no filter tag")
	}
}

func TestSearchLimit(t *testing.T) {
	engine := scenarioEngine(t)

	all := engine.Search("mage", SearchOptions{})
	if len(all) < 2 {
		t.Fatalf("need at least 2 results, got %d", len(all))
	}

	one := engine.Search("mage", SearchOptions{Limit: 1})
	if len(one) != 1 {
		t.Fatalf("got %d results, want 1", len(one))
	}
	if one[0].Entry.ID != all[0].Entry.ID {
		t.Errorf("limited search kept %s, want top result %s", one[0].Entry.ID, all[0].Entry.ID)
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	data := map[string]types.Entry{}
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("clone-%02d", i)
		data[id] = types.Entry{
			Name:        "Stormcaller",
			Category:    types.CategoryCharacters,
			Description: "Stormcaller of the high peaks.",
			Tags:        []string{"storm"},
		}
	}
	source := &fakeSource{data: map[types.Category]map[string]types.Entry{types.CategoryCharacters: data}}
	engine := NewEngine(types.EngineConfig{}, source, nil)

	results := engine.Search("stormcaller", SearchOptions{})
	if len(results) != DefaultMaxResults {
		t.Errorf("got %d results, want default cap %d", len(results), DefaultMaxResults)
	}
}

func TestSearchRelationshipAttachment(t *testing.T) {
	stripped := NewEngine(types.EngineConfig{FuzzyThreshold: 0.2}, scenarioSource(), nil)
	results := stripped.Search("mage", SearchOptions{})
	hero, ok := findResult(results, "hero")
	if !ok {
		t.Fatal("hero missing")
	}
	if hero.Entry.Relationships != nil {
		t.Error("relationships attached without IncludeRelationships")
	}

	attached := NewEngine(types.EngineConfig{FuzzyThreshold: 0.2, IncludeRelationships: true}, scenarioSource(), nil)
	results = attached.Search("mage", SearchOptions{})
	hero, ok = findResult(results, "hero")
	if !ok {
		t.Fatal("hero missing")
	}
	if len(hero.Entry.Relationships) != 1 {
		t.Errorf("got %d relationships, want 1", len(hero.Entry.Relationships))
	}
}

// --- related ---

func TestRelatedDirect(t *testing.T) {
	engine := scenarioEngine(t)

	results := engine.Related("hero", "", 1)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Entry.ID != "city" {
		t.Errorf("related entry = %s, want city", r.Entry.ID)
	}
	if r.Edge.Type != types.RelLocatedIn {
		t.Errorf("edge type = %s, want located_in", r.Edge.Type)
	}
	if r.Edge.Strength != 8 {
		t.Errorf("edge strength = %v, want 8", r.Edge.Strength)
	}
	if r.Depth != 1 {
		t.Errorf("depth = %d, want 1", r.Depth)
	}
}

func TestRelatedUnknownID(t *testing.T) {
	engine := scenarioEngine(t)
	if got := engine.Related("nobody", "", 3); len(got) != 0 {
		t.Errorf("got %d results for unknown id, want 0", len(got))
	}
}

func TestRelatedTypeFilter(t *testing.T) {
	engine := scenarioEngine(t)

	if got := engine.Related("hero", types.RelEnemyOf, 1); len(got) != 0 {
		t.Errorf("got %d results, want 0 after type filter", len(got))
	}
	if got := engine.Related("hero", types.RelLocatedIn, 1); len(got) != 1 {
		t.Errorf("got %d results, want 1 for matching type", len(got))
	}
}

func TestRelatedParallelEdges(t *testing.T) {
	source := &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryCharacters: {
				"a": {
					Name:     "Aldera",
					Category: types.CategoryCharacters,
					Relationships: []types.Relationship{
						{TargetID: "b", Type: types.RelAllyOf},
						{TargetID: "b", Type: types.RelFamilyOf},
					},
				},
				"b": {Name: "Beren", Category: types.CategoryCharacters},
			},
		},
	}
	engine := NewEngine(types.EngineConfig{}, source, nil)

	// Both parallel edges surface at depth 1, one result each.
	results := engine.Related("a", "", 1)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	seen := map[types.RelationType]bool{}
	for _, r := range results {
		if r.Entry.ID != "b" {
			t.Errorf("target = %s, want b", r.Entry.ID)
		}
		seen[r.Edge.Type] = true
	}
	if !seen[types.RelAllyOf] || !seen[types.RelFamilyOf] {
		t.Errorf("edge types = %v, want ally_of and family_of", seen)
	}

	results = engine.Related("a", types.RelFamilyOf, 1)
	if len(results) != 1 || results[0].Edge.Type != types.RelFamilyOf {
		t.Errorf("type-filtered results = %+v, want single family_of edge", results)
	}
}

func TestRelatedCycleTerminates(t *testing.T) {
	source := &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryConcepts: {
				"a": {Name: "A", Category: types.CategoryConcepts, Relationships: []types.Relationship{{TargetID: "b", Type: types.RelRelatedTo}}},
				"b": {Name: "B", Category: types.CategoryConcepts, Relationships: []types.Relationship{{TargetID: "c", Type: types.RelRelatedTo}}},
				"c": {Name: "C", Category: types.CategoryConcepts, Relationships: []types.Relationship{{TargetID: "a", Type: types.RelRelatedTo}}},
			},
		},
	}
	engine := NewEngine(types.EngineConfig{}, source, nil)

	results := engine.Related("a", "", 5)

	counts := map[string]int{}
	for _, r := range results {
		counts[r.Entry.ID]++
	}
	for id, n := range counts {
		if n > 1 {
			t.Errorf("entry %s appeared %d times, want at most once", id, n)
		}
	}
	wantDepths := map[string]int{"b": 1, "c": 2, "a": 3}
	for _, r := range results {
		if want := wantDepths[r.Entry.ID]; r.Depth != want {
			t.Errorf("entry %s first reached at depth %d, want %d", r.Entry.ID, r.Depth, want)
		}
	}
}

func TestRelatedSkipsDanglingTargets(t *testing.T) {
	source := scenarioSource()
	entry := source.data[types.CategoryCharacters]["villain"]
	entry.Relationships = []types.Relationship{{TargetID: "ghost", Type: types.RelAllyOf}}
	source.data[types.CategoryCharacters]["villain"] = entry

	engine := NewEngine(types.EngineConfig{}, source, nil)
	if got := engine.Related("villain", "", 2); len(got) != 0 {
		t.Errorf("got %d results through dangling target, want 0", len(got))
	}
}

func TestRelatedDefaultDepth(t *testing.T) {
	source := &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryConcepts: {
				"a": {Name: "A", Category: types.CategoryConcepts, Relationships: []types.Relationship{{TargetID: "b", Type: types.RelRelatedTo}}},
				"b": {Name: "B", Category: types.CategoryConcepts, Relationships: []types.Relationship{{TargetID: "c", Type: types.RelRelatedTo}}},
				"c": {Name: "C", Category: types.CategoryConcepts},
			},
		},
	}

	// Default depth is 1: only the direct successor.
	engine := NewEngine(types.EngineConfig{}, source, nil)
	if got := engine.Related("a", "", 0); len(got) != 1 {
		t.Errorf("got %d results at default depth, want 1", len(got))
	}

	deeper := NewEngine(types.EngineConfig{MaxDepth: 2}, source, nil)
	if got := deeper.Related("a", "", 0); len(got) != 2 {
		t.Errorf("got %d results at configured depth 2, want 2", len(got))
	}
}

// --- suggest ---

func TestSuggestExcludesSelf(t *testing.T) {
	engine := scenarioEngine(t)

	for _, r := range engine.Suggest("hero", 10) {
		if r.Entry.ID == "hero" {
			t.Error("suggestion list contains the source entry")
		}
	}
}

func TestSuggestUnknownID(t *testing.T) {
	engine := scenarioEngine(t)
	if got := engine.Suggest("nobody", 5); len(got) != 0 {
		t.Errorf("got %d suggestions for unknown id, want 0", len(got))
	}
}

func TestSuggestSharedTags(t *testing.T) {
	engine := scenarioEngine(t)

	suggestions := engine.Suggest("hero", 5)

	var villain *Suggestion
	for i := range suggestions {
		if suggestions[i].Entry.ID == "villain" {
			villain = &suggestions[i]
		}
		if suggestions[i].Entry.ID == "city" {
			t.Error("city suggested despite sharing no tags and little text")
		}
	}
	if villain == nil {
		t.Fatal("villain not suggested despite shared tag")
	}
	// Tag overlap of 1/2 alone contributes (0.5*2.0)/2 = 0.5.
	if villain.Similarity <= 0.3 {
		t.Errorf("villain similarity %.2f not above threshold", villain.Similarity)
	}
}

func TestSuggestIdenticalTagsScoreHigh(t *testing.T) {
	source := &fakeSource{
		data: map[types.Category]map[string]types.Entry{
			types.CategoryArtifacts: {
				"crown": {Name: "Crown of Embers", Category: types.CategoryArtifacts, Tags: []string{"relic", "fire"}},
				"blade": {Name: "Blade of Embers", Category: types.CategoryArtifacts, Tags: []string{"relic", "fire"}},
			},
		},
	}
	engine := NewEngine(types.EngineConfig{}, source, nil)

	suggestions := engine.Suggest("crown", 5)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	// Identical tag sets alone give a 1.0 Jaccard term weighted 2.0.
	if suggestions[0].Similarity < 1.0 {
		t.Errorf("similarity = %.2f, want >= 1.0", suggestions[0].Similarity)
	}
}

func TestSuggestLimitAndOrder(t *testing.T) {
	data := map[string]types.Entry{
		"src": {Name: "Source", Category: types.CategoryConcepts, Tags: []string{"arcane"}},
	}
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("sib-%d", i)
		data[id] = types.Entry{Name: "Sibling", Category: types.CategoryConcepts, Tags: []string{"arcane"}}
	}
	source := &fakeSource{data: map[types.Category]map[string]types.Entry{types.CategoryConcepts: data}}
	engine := NewEngine(types.EngineConfig{}, source, nil)

	byDefault := engine.Suggest("src", 0)
	if len(byDefault) != DefaultSuggestLimit {
		t.Errorf("got %d suggestions, want default cap %d", len(byDefault), DefaultSuggestLimit)
	}

	suggestions := engine.Suggest("src", 3)
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i-1].Similarity < suggestions[i].Similarity {
			t.Errorf("suggestions not sorted: %.2f before %.2f",
				suggestions[i-1].Similarity, suggestions[i].Similarity)
		}
	}
}

// --- statistics ---

func TestStatisticsScenario(t *testing.T) {
	engine := scenarioEngine(t)

	stats := engine.Statistics()

	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	wantCategories := map[types.Category]int{
		types.CategoryCharacters: 2,
		types.CategoryLocations:  1,
	}
	if !reflect.DeepEqual(stats.Categories, wantCategories) {
		t.Errorf("Categories = %v, want %v", stats.Categories, wantCategories)
	}
	if stats.TotalRelationships != 1 {
		t.Errorf("TotalRelationships = %d, want 1", stats.TotalRelationships)
	}
	if !reflect.DeepEqual(stats.OrphanedEntries, []string{"villain"}) {
		t.Errorf("OrphanedEntries = %v, want [villain]", stats.OrphanedEntries)
	}
	if len(stats.BrokenReferences) != 0 {
		t.Errorf("BrokenReferences = %v, want none", stats.BrokenReferences)
	}
}

func TestStatisticsCountsDeclarations(t *testing.T) {
	source := scenarioSource()
	entry := source.data[types.CategoryCharacters]["villain"]
	entry.Relationships = []types.Relationship{
		{TargetID: "hero", Type: types.RelEnemyOf},
		{TargetID: "ghost", Type: types.RelAllyOf},
	}
	source.data[types.CategoryCharacters]["villain"] = entry

	engine := NewEngine(types.EngineConfig{}, source, nil)
	stats := engine.Statistics()

	declarations := 0
	for _, e := range engine.Entries() {
		declarations += len(e.Relationships)
	}
	if stats.TotalRelationships != declarations {
		t.Errorf("TotalRelationships = %d, want %d declarations", stats.TotalRelationships, declarations)
	}

	// The dangling target is reported but never indexed or orphaned.
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if len(stats.BrokenReferences) != 1 {
		t.Fatalf("BrokenReferences = %v, want one", stats.BrokenReferences)
	}
	br := stats.BrokenReferences[0]
	if br.SourceID != "villain" || br.TargetID != "ghost" || br.Type != types.RelAllyOf {
		t.Errorf("broken reference = %+v", br)
	}
	for _, id := range stats.OrphanedEntries {
		if id == "ghost" {
			t.Error("dangling target listed as orphaned")
		}
	}
}

// --- build and refresh ---

func TestRefreshPicksUpChanges(t *testing.T) {
	source := scenarioSource()
	engine := NewEngine(types.EngineConfig{}, source, nil)

	if _, ok := engine.Entry("newcomer"); ok {
		t.Fatal("newcomer present before it was added")
	}

	source.data[types.CategoryCharacters]["newcomer"] = types.Entry{
		Name:     "Newcomer",
		Category: types.CategoryCharacters,
	}

	// Stale until an explicit refresh.
	if _, ok := engine.Entry("newcomer"); ok {
		t.Fatal("engine picked up store change without refresh")
	}

	engine.Refresh()
	if _, ok := engine.Entry("newcomer"); !ok {
		t.Fatal("newcomer missing after refresh")
	}
}

func TestRefreshIsDeterministic(t *testing.T) {
	engine := scenarioEngine(t)

	entries1 := engine.Entries()
	graph1 := engine.GraphView()
	results1 := engine.Search("mage", SearchOptions{})

	engine.Refresh()

	if entries2 := engine.Entries(); !reflect.DeepEqual(entries1, entries2) {
		t.Error("index contents differ across refreshes of an unchanged corpus")
	}
	if graph2 := engine.GraphView(); !reflect.DeepEqual(graph1, graph2) {
		t.Error("graph differs across refreshes of an unchanged corpus")
	}
	if results2 := engine.Search("mage", SearchOptions{}); !reflect.DeepEqual(results1, results2) {
		t.Error("search results differ across refreshes of an unchanged corpus")
	}
}

func TestBuildSkipsMalformedEntries(t *testing.T) {
	source := scenarioSource()
	source.data[types.CategoryCharacters]["nameless"] = types.Entry{
		Category: types.CategoryCharacters,
	}
	source.data[types.CategoryCharacters]["miscategorized"] = types.Entry{
		Name:     "Lost Soul",
		Category: "weather",
	}

	engine := NewEngine(types.EngineConfig{}, source, nil)

	if _, ok := engine.Entry("nameless"); ok {
		t.Error("entry without a name was indexed")
	}
	if _, ok := engine.Entry("miscategorized"); ok {
		t.Error("entry with unknown category was indexed")
	}
	if _, ok := engine.Entry("hero"); !ok {
		t.Error("well-formed entry lost alongside malformed ones")
	}

	stats := engine.LastBuild()
	if stats.Entries != 3 {
		t.Errorf("built %d entries, want 3", stats.Entries)
	}
	if stats.Skipped != 2 {
		t.Errorf("skipped %d, want 2", stats.Skipped)
	}
}

func TestBuildToleratesUnavailableCategory(t *testing.T) {
	source := scenarioSource()
	source.fail[types.CategoryLocations] = errors.New("permission denied")

	engine := NewEngine(types.EngineConfig{}, source, nil)

	if _, ok := engine.Entry("city"); ok {
		t.Error("entry from failed category was indexed")
	}
	if _, ok := engine.Entry("hero"); !ok {
		t.Error("healthy categories lost when one fails")
	}

	// The hero's edge now dangles; it still counts as a relationship.
	stats := engine.Statistics()
	if stats.TotalRelationships != 1 {
		t.Errorf("TotalRelationships = %d, want 1", stats.TotalRelationships)
	}
	if len(stats.BrokenReferences) != 1 {
		t.Errorf("BrokenReferences = %v, want the dangling edge", stats.BrokenReferences)
	}
}

func TestBuildAppliesDefaultStrength(t *testing.T) {
	source := scenarioSource()
	entry := source.data[types.CategoryCharacters]["villain"]
	entry.Relationships = []types.Relationship{{TargetID: "hero", Type: types.RelEnemyOf}}
	source.data[types.CategoryCharacters]["villain"] = entry

	engine := NewEngine(types.EngineConfig{}, source, nil)

	results := engine.Related("villain", "", 1)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Edge.Strength != types.DefaultStrength {
		t.Errorf("strength = %v, want default %v", results[0].Edge.Strength, types.DefaultStrength)
	}
}

// --- graph view ---

func TestGraphViewFull(t *testing.T) {
	engine := scenarioEngine(t)

	view := engine.GraphView()
	if len(view.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(view.Nodes))
	}
	if len(view.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(view.Edges))
	}
	edge := view.Edges[0]
	if edge.Source != "hero" || edge.Target != "city" || edge.Type != types.RelLocatedIn {
		t.Errorf("edge = %+v", edge)
	}
}

func TestGraphViewInducedSubgraph(t *testing.T) {
	engine := scenarioEngine(t)

	view := engine.GraphView("hero", "city")
	if len(view.Nodes) != 2 || len(view.Edges) != 1 {
		t.Errorf("subgraph = %+v, want 2 nodes and 1 edge", view)
	}

	// The hero-city edge leaves this node set, so only nodes survive.
	view = engine.GraphView("hero", "villain")
	if len(view.Nodes) != 2 || len(view.Edges) != 0 {
		t.Errorf("subgraph = %+v, want 2 nodes and 0 edges", view)
	}

	view = engine.GraphView("nobody")
	if len(view.Nodes) != 0 || len(view.Edges) != 0 {
		t.Errorf("subgraph over unknown ids = %+v, want empty", view)
	}
}
