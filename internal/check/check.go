// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check validates a lore corpus for internal contradictions: event
// dates out of order, impossible location containment, mutually exclusive
// relationships, references to missing entries, containment cycles, and
// duplicate names. It runs over a built engine and never touches disk.
package check

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

// Run executes every enabled rule group against the engine's current index
// and returns the combined report. Reference, cycle, and duplicate checks
// always run; the rest honor cfg.
func Run(eng *lore.Engine, cfg types.CheckConfig) Report {
	c := &checker{eng: eng, entries: eng.Entries()}

	issues := []Issue{}
	if !cfg.SkipDates {
		issues = append(issues, c.checkDates()...)
	}
	if !cfg.SkipHierarchy {
		issues = append(issues, c.checkHierarchy()...)
	}
	if !cfg.SkipRelationships {
		issues = append(issues, c.checkRelationships()...)
	}
	issues = append(issues, c.checkReferences()...)
	issues = append(issues, c.checkCycles()...)
	issues = append(issues, c.checkDuplicates()...)

	return buildReport(len(c.entries), issues)
}

type checker struct {
	eng     *lore.Engine
	entries []types.Entry
}

func (c *checker) entryName(id string) string {
	if e, ok := c.eng.Entry(id); ok {
		return e.Name
	}
	return id
}

// --- dates ---

// datePattern accepts "Year 1800", "1800 EE", and bare integers.
var datePattern = regexp.MustCompile(`(?:year\s+)?(\d+)(?:\s+ee)?`)

// ParseDate turns a date phrase into a comparable year on the common
// calendar. Phrases naming the Collapse map to year 0, "before the
// Collapse" to -1. The second return is false when no year can be read.
func ParseDate(s string) (int, bool) {
	ls := strings.ToLower(strings.TrimSpace(s))
	if ls == "" {
		return 0, false
	}
	if m := datePattern.FindStringSubmatch(ls); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			return year, true
		}
	}
	if strings.Contains(ls, "collapse") {
		if strings.Contains(ls, "before") {
			return -1, true
		}
		return 0, true
	}
	return 0, false
}

func customDate(e types.Entry, field string) (int, bool) {
	v, ok := e.CustomFields[field]
	if !ok {
		return 0, false
	}
	return ParseDate(v.String())
}

type datedEvent struct {
	entry types.Entry
	year  int
}

func (c *checker) checkDates() []Issue {
	issues := []Issue{}

	var dated []datedEvent
	for _, e := range c.entries {
		if e.Category != types.CategoryEvents {
			continue
		}
		v, ok := e.CustomFields["date"]
		if !ok || v.String() == "" {
			continue
		}
		year, ok := ParseDate(v.String())
		if !ok {
			issues = append(issues, issuef(KindDates, SeveritySuggestion,
				"event %q has an unparseable date: %q", e.Name, v.String()))
			continue
		}
		dated = append(dated, datedEvent{entry: e, year: year})
	}

	for i := range dated {
		for j := range dated {
			if i == j {
				continue
			}
			if shouldPrecede(dated[i].entry, dated[j].entry) && dated[i].year > dated[j].year {
				issues = append(issues, issuef(KindDates, SeverityWarning,
					"date inconsistency: %q should occur before %q",
					dated[i].entry.Name, dated[j].entry.Name))
			}
		}
	}

	for _, e := range c.entries {
		if e.Category != types.CategoryCharacters {
			continue
		}
		birth, okBirth := customDate(e, "birth_date")
		death, okDeath := customDate(e, "death_date")
		if okBirth && okDeath && birth > death {
			issues = append(issues, issuef(KindDates, SeverityWarning,
				"character %q has a birth date after its death date", e.Name))
		}
	}

	return issues
}

// shouldPrecede reports whether a is required to happen before b, either by
// an explicit predecessor_of/successor_of link or by the naming convention
// that recovery-era events follow the Collapse.
func shouldPrecede(a, b types.Entry) bool {
	for _, rel := range a.Relationships {
		if rel.Type == types.RelPredecessorOf && rel.TargetID == b.ID {
			return true
		}
	}
	for _, rel := range b.Relationships {
		if rel.Type == types.RelSuccessorOf && rel.TargetID == a.ID {
			return true
		}
	}
	nameA, nameB := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if strings.Contains(nameA, "collapse") {
		for _, word := range []string{"aftermath", "recovery", "rebuilding"} {
			if strings.Contains(nameB, word) {
				return true
			}
		}
	}
	return false
}

// --- location hierarchy ---

// sizeOrder ranks location size classes from smallest to largest. A child
// whose class outranks its container's is a contradiction.
var sizeOrder = []string{
	"building", "district", "settlement", "city", "region",
	"province", "state", "continent", "world", "plane",
}

var sizeRank = func() map[string]int {
	m := make(map[string]int, len(sizeOrder))
	for i, class := range sizeOrder {
		m[class] = i
	}
	return m
}()

func sizeClass(e types.Entry) string {
	v, ok := e.CustomFields["type"]
	if !ok {
		return ""
	}
	return strings.ToLower(v.String())
}

func (c *checker) checkHierarchy() []Issue {
	issues := []Issue{}

	isLocation := make(map[string]bool)
	var order []string
	for _, e := range c.entries {
		if e.Category == types.CategoryLocations {
			isLocation[e.ID] = true
			order = append(order, e.ID)
		}
	}

	adj := make(map[string][]string)
	for _, e := range c.entries {
		if !isLocation[e.ID] {
			continue
		}
		for _, rel := range e.Relationships {
			if rel.Type == types.RelPartOf && isLocation[rel.TargetID] {
				adj[e.ID] = append(adj[e.ID], rel.TargetID)
			}
		}
	}
	issues = append(issues, c.containmentCycles(order, adj)...)

	for _, e := range c.entries {
		if e.Category != types.CategoryLocations {
			continue
		}
		childClass := sizeClass(e)
		childRank, known := sizeRank[childClass]
		if !known {
			continue
		}
		for _, rel := range e.Relationships {
			if rel.Type != types.RelPartOf && rel.Type != types.RelLocatedIn {
				continue
			}
			parent, ok := c.eng.Entry(rel.TargetID)
			if !ok {
				continue
			}
			parentRank, known := sizeRank[sizeClass(parent)]
			if known && childRank > parentRank {
				issues = append(issues, issuef(KindHierarchy, SeverityCritical,
					"impossible containment: %s %q cannot be inside %s %q",
					childClass, e.Name, sizeClass(parent), parent.Name))
			}
		}
	}

	return issues
}

// containmentCycles walks the part_of graph between locations and reports
// each cycle found. Colors: 0 unvisited, 1 on the current path, 2 done.
func (c *checker) containmentCycles(order []string, adj map[string][]string) []Issue {
	issues := []Issue{}
	color := make(map[string]int)
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = 1
		stack = append(stack, id)
		for _, next := range adj[id] {
			switch color[next] {
			case 0:
				visit(next)
			case 1:
				start := 0
				for i, v := range stack {
					if v == next {
						start = i
						break
					}
				}
				names := make([]string, 0, len(stack)-start+1)
				for _, cid := range stack[start:] {
					names = append(names, c.entryName(cid))
				}
				names = append(names, c.entryName(next))
				issues = append(issues, issuef(KindHierarchy, SeverityCritical,
					"circular location containment: %s", strings.Join(names, " -> ")))
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = 2
	}

	for _, id := range order {
		if color[id] == 0 {
			visit(id)
		}
	}
	return issues
}

// --- character relationships ---

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func (c *checker) checkRelationships() []Issue {
	issues := []Issue{}
	seen := make(map[[2]string]bool)

	for _, e := range c.entries {
		if e.Category != types.CategoryCharacters {
			continue
		}
		for _, rel := range e.Relationships {
			if rel.Type != types.RelAllyOf && rel.Type != types.RelEnemyOf {
				continue
			}
			target, ok := c.eng.Entry(rel.TargetID)
			if !ok {
				continue
			}
			for _, back := range target.Relationships {
				if back.TargetID != e.ID {
					continue
				}
				if back.Type != types.RelAllyOf && back.Type != types.RelEnemyOf {
					continue
				}
				if back.Type == rel.Type {
					continue
				}
				key := pairKey(e.ID, target.ID)
				if seen[key] {
					continue
				}
				seen[key] = true
				issues = append(issues, issuef(KindRelationships, SeverityCritical,
					"conflicting relationship: %q and %q declare each other both ally and enemy",
					e.Name, target.Name))
			}
		}
	}

	return issues
}

// --- references ---

func (c *checker) checkReferences() []Issue {
	issues := []Issue{}
	for _, e := range c.entries {
		for _, rel := range e.Relationships {
			if _, ok := c.eng.Entry(rel.TargetID); !ok {
				issues = append(issues, issuef(KindReferences, SeverityWarning,
					"entry %q references a missing entry: %s", e.Name, rel.TargetID))
			}
		}
	}
	return issues
}

// --- cycles ---

// checkCycles flags two entries that each declare the other part_of
// themselves, in any category. Longer containment loops between locations
// are covered by the hierarchy rules.
func (c *checker) checkCycles() []Issue {
	issues := []Issue{}
	seen := make(map[[2]string]bool)

	for _, e := range c.entries {
		for _, rel := range e.Relationships {
			if rel.Type != types.RelPartOf {
				continue
			}
			target, ok := c.eng.Entry(rel.TargetID)
			if !ok {
				continue
			}
			for _, back := range target.Relationships {
				if back.Type != types.RelPartOf || back.TargetID != e.ID {
					continue
				}
				key := pairKey(e.ID, target.ID)
				if seen[key] {
					continue
				}
				seen[key] = true
				issues = append(issues, issuef(KindCycles, SeverityCritical,
					"circular part_of relationship between %q and %q", e.Name, target.Name))
			}
		}
	}

	return issues
}

// --- duplicates ---

func (c *checker) checkDuplicates() []Issue {
	issues := []Issue{}
	first := make(map[[2]string]string)

	for _, e := range c.entries {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			continue
		}
		key := [2]string{name, string(e.Category)}
		if prev, ok := first[key]; ok {
			issues = append(issues, issuef(KindDuplicates, SeverityWarning,
				"duplicate name in %s: %q (ids %s and %s)", e.Category, e.Name, prev, e.ID))
			continue
		}
		first[key] = e.ID
	}

	return issues
}
