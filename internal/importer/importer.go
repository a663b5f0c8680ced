// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package importer loads legacy corpus data into the store. The one format
// currently understood is the realm-states CSV produced by the old map
// tooling: each row becomes a state location plus its capital city, linked
// by a located_in relationship.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/store"
	"github.com/pdiddy/lore-engine/pkg/types"
)

// stateColumns are the headers a states CSV must carry.
var stateColumns = []string{
	"State", "Full Name", "Form", "Capital", "Culture", "Type",
	"Total Population", "Rural Population", "Urban Population",
	"Area mi2", "Expansionism", "Color",
}

// Importer writes imported entries through the store so they get the same
// validation and metadata stamping as hand-created ones.
type Importer struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: st, log: log}
}

// Report summarizes one import run. Created counts entries, not rows; a
// state row normally yields two.
type Report struct {
	ImportedAt time.Time         `json:"imported_at"`
	Source     string            `json:"source"`
	Created    int               `json:"created"`
	Skipped    int               `json:"skipped"`
	Failed     int               `json:"failed"`
	CreatedIDs map[string]string `json:"created_ids"`
}

// States imports a realm-states CSV. Rows named "Neutrals" are skipped.
// When world names an existing location entry, every imported state is
// linked to it with a located_in relationship.
func (im *Importer) States(path, world string) (Report, error) {
	report := Report{
		ImportedAt: time.Now().UTC(),
		Source:     path,
		CreatedIDs: make(map[string]string),
	}

	f, err := os.Open(path)
	if err != nil {
		return report, fmt.Errorf("opening states file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return report, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range stateColumns {
		if _, ok := col[name]; !ok {
			return report, fmt.Errorf("states file is missing column %q", name)
		}
	}

	worldID := im.findWorld(world)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				report.Failed++
				im.log.Warn("skipping ragged row", zap.Error(err))
				continue
			}
			return report, fmt.Errorf("reading states file: %w", err)
		}

		field := func(name string) string { return strings.TrimSpace(record[col[name]]) }
		if field("State") == "Neutrals" {
			report.Skipped++
			continue
		}
		im.importState(field, world, worldID, &report)
	}

	im.log.Info("states import finished",
		zap.String("source", path),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

func (im *Importer) importState(field func(string) string, world, worldID string, report *Report) {
	fullName := field("Full Name")
	capital := field("Capital")
	culture := field("Culture")

	state := types.Entry{
		Name:        fullName,
		Category:    types.CategoryLocations,
		Description: stateDescription(field("Form"), world, capital, culture, field("Total Population")),
		Tags:        dropEmpty("state", "political-entity", strings.ToLower(culture), strings.ToLower(field("Type"))),
		CustomFields: map[string]types.Value{
			"type":             types.StringValue("state"),
			"government_form":  types.StringValue(field("Form")),
			"capital":          types.StringValue(capital),
			"culture":          types.StringValue(culture),
			"total_population": types.NumberValue(intField(field("Total Population"))),
			"rural_population": types.NumberValue(intField(field("Rural Population"))),
			"urban_population": types.NumberValue(intField(field("Urban Population"))),
			"area_sq_miles":    types.NumberValue(math.Trunc(floatField(field("Area mi2")))),
			"expansionism":     types.NumberValue(floatField(field("Expansionism"))),
			"color":            types.StringValue(field("Color")),
		},
	}

	stateID, err := im.store.Create(state)
	if err != nil {
		report.Failed++
		im.log.Warn("state import failed", zap.String("name", fullName), zap.Error(err))
		return
	}
	report.Created++
	report.CreatedIDs[fullName] = stateID
	if short := field("State"); short != "" {
		report.CreatedIDs[short] = stateID
	}

	if worldID != "" {
		err := im.store.AddRelationship(stateID, worldID, types.RelLocatedIn,
			fmt.Sprintf("%s is located in %s", fullName, world), 8)
		if err != nil {
			report.Failed++
			im.log.Warn("linking state to world failed", zap.String("name", fullName), zap.Error(err))
		}
	}

	if capital == "" {
		return
	}
	capitalEntry := types.Entry{
		Name:        capital,
		Category:    types.CategoryLocations,
		Description: fmt.Sprintf("Capital city of %s.", fullName),
		Tags:        dropEmpty("city", "capital", strings.ToLower(culture)),
		CustomFields: map[string]types.Value{
			"type":         types.StringValue("city"),
			"is_capital":   types.BoolValue(true),
			"parent_state": types.StringValue(fullName),
		},
	}
	capitalID, err := im.store.Create(capitalEntry)
	if err != nil {
		report.Failed++
		im.log.Warn("capital import failed", zap.String("name", capital), zap.Error(err))
		return
	}
	report.Created++
	report.CreatedIDs[capital] = capitalID

	err = im.store.AddRelationship(capitalID, stateID, types.RelLocatedIn,
		fmt.Sprintf("%s is the capital of %s", capital, fullName), 10)
	if err != nil {
		report.Failed++
		im.log.Warn("linking capital failed", zap.String("name", capital), zap.Error(err))
	}
}

// findWorld returns the id of the location entry named world, or "".
func (im *Importer) findWorld(world string) string {
	if world == "" {
		return ""
	}
	locations, err := im.store.Entries(types.CategoryLocations)
	if err != nil {
		return ""
	}
	ids := make([]string, 0, len(locations))
	for id := range locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if locations[id].Name == world {
			return id
		}
	}
	return ""
}

func stateDescription(form, world, capital, culture, population string) string {
	var b strings.Builder
	if world != "" {
		fmt.Fprintf(&b, "A %s in the world of %s.", strings.ToLower(form), world)
	} else {
		fmt.Fprintf(&b, "A %s.", strings.ToLower(form))
	}
	fmt.Fprintf(&b, " Capital: %s. Culture: %s. Population: %s.", capital, culture, population)
	return b.String()
}

func dropEmpty(tags ...string) []string {
	kept := tags[:0]
	for _, t := range tags {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return kept
}

func intField(s string) float64 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return float64(n)
}

func floatField(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
