// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

type corpus map[types.Category]map[string]types.Entry

func (c corpus) Entries(cat types.Category) (map[string]types.Entry, error) {
	return c[cat], nil
}

func testCorpus() corpus {
	return corpus{
		types.CategoryCharacters: {
			"tharos": {
				Name:        "Tharos the Wise",
				Category:    types.CategoryCharacters,
				Subcategory: "archmage",
				Description: "Guardian of the old ways.",
				Tags:        []string{"mage", "zeloria"},
				Relationships: []types.Relationship{
					{TargetID: "zeloria", Type: types.RelLocatedIn, Strength: 8, Description: "home city"},
				},
				CustomFields: map[string]types.Value{
					"age":    types.NumberValue(340),
					"titles": types.ListValue("Archmage", "Warden"),
				},
				Metadata: types.Metadata{
					CreatedDate:  time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
					ModifiedDate: time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC),
					Version:      3,
					Status:       types.StatusCanon,
				},
			},
			"morvane": {
				Name:        "Morvane",
				Category:    types.CategoryCharacters,
				Description: "A renegade sorcerer.",
			},
		},
		types.CategoryLocations: {
			"zeloria": {
				Name:        "Zeloria",
				Category:    types.CategoryLocations,
				Description: "The walled capital.",
			},
		},
	}
}

func testExporter(t *testing.T, cfg types.ExportConfig) *Exporter {
	t.Helper()
	eng := lore.NewEngine(types.EngineConfig{}, testCorpus(), zap.NewNop())
	return New(eng, cfg, nil)
}

func TestRenderMarkdown(t *testing.T) {
	eng := lore.NewEngine(types.EngineConfig{}, testCorpus(), zap.NewNop())
	entry, ok := eng.Entry("tharos")
	require.True(t, ok)

	nameOf := func(id string) (string, bool) {
		e, ok := eng.Entry(id)
		return e.Name, ok
	}

	want := `# Tharos the Wise

**Category:** characters

**Subcategory:** archmage

## Description

Guardian of the old ways.

**Tags:** mage, zeloria

## Relationships

- **located_in**: Zeloria - home city

## Additional Information

**Age:** 340

**Titles:** Archmage, Warden

---

*Created: 2026-01-10T09:00:00Z*

*Last Modified: 2026-02-01T12:30:00Z*

*Status: canon*

`
	assert.Equal(t, want, renderMarkdown(entry, nameOf))
}

func TestRenderMarkdownFallbacks(t *testing.T) {
	entry := types.Entry{
		ID:       "shade",
		Name:     "The Shade",
		Category: types.CategoryCreatures,
		Relationships: []types.Relationship{
			{TargetID: "forgotten_keep", Type: types.RelLocatedIn},
		},
	}
	nothing := func(string) (string, bool) { return "", false }

	doc := renderMarkdown(entry, nothing)
	assert.Contains(t, doc, "No description available.")
	assert.Contains(t, doc, "- **located_in**: forgotten_keep\n")
	assert.Contains(t, doc, "*Created: Unknown*")
	assert.Contains(t, doc, "*Status: Unknown*")
	assert.NotContains(t, doc, "**Tags:**")
	assert.NotContains(t, doc, "**Subcategory:**")
}

func TestMarkdownExport(t *testing.T) {
	out := t.TempDir()
	x := testExporter(t, types.ExportConfig{OutputDir: out})

	root, err := x.Markdown()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "markdown"), root)

	doc, err := os.ReadFile(filepath.Join(root, "characters", "Tharos_the_Wise.md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "# Tharos the Wise")
	assert.Contains(t, string(doc), "- **located_in**: Zeloria - home city")

	_, err = os.Stat(filepath.Join(root, "characters", "Morvane.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "locations", "Zeloria.md"))
	assert.NoError(t, err)

	// Categories with no entries leave no directory behind.
	_, err = os.Stat(filepath.Join(root, "creatures"))
	assert.True(t, os.IsNotExist(err))
}

func TestYAMLExport(t *testing.T) {
	out := t.TempDir()
	x := testExporter(t, types.ExportConfig{OutputDir: out})

	path, err := x.YAML()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "lore.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var d Dump
	require.NoError(t, yaml.Unmarshal(data, &d))

	assert.Equal(t, 3, d.TotalEntries)
	assert.Equal(t, 2, d.Counts[types.CategoryCharacters])
	assert.Equal(t, 1, d.Counts[types.CategoryLocations])
	require.Len(t, d.Entries[types.CategoryCharacters], 2)
	assert.Equal(t, "morvane", d.Entries[types.CategoryCharacters][0].ID)
	assert.Equal(t, "Zeloria", d.Entries[types.CategoryLocations][0].Name)
	assert.False(t, d.ExportedAt.IsZero())
}

func TestJSONExport(t *testing.T) {
	out := t.TempDir()
	x := testExporter(t, types.ExportConfig{OutputDir: out})

	path, err := x.JSON()
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var d Dump
	require.NoError(t, json.Unmarshal(data, &d))

	assert.Equal(t, 3, d.TotalEntries)
	require.Len(t, d.Entries[types.CategoryCharacters], 2)
	tharos := d.Entries[types.CategoryCharacters][1]
	assert.Equal(t, "tharos", tharos.ID)
	assert.Equal(t, "340", tharos.CustomFields["age"].String())
}

func TestExportDispatch(t *testing.T) {
	out := t.TempDir()

	x := testExporter(t, types.ExportConfig{OutputDir: out, Format: types.ExportJSON})
	path, err := x.Export()
	require.NoError(t, err)
	assert.Equal(t, "lore.json", filepath.Base(path))

	x = testExporter(t, types.ExportConfig{OutputDir: out, Format: "xml"})
	_, err = x.Export()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestDefaultFormatIsMarkdown(t *testing.T) {
	out := t.TempDir()
	x := testExporter(t, types.ExportConfig{OutputDir: out})

	path, err := x.Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "markdown"), path)
}
