// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// builtinTemplates are the starter entries handed out per category. Custom
// fields show the shape authors typically fill in for that category.
var builtinTemplates = map[types.Category]types.Entry{
	types.CategoryCharacters: {
		Category:    types.CategoryCharacters,
		Description: "Who they are, what they want, and what stands in their way.",
		CustomFields: map[string]types.Value{
			"age":        types.NumberValue(0),
			"race":       types.StringValue(""),
			"occupation": types.StringValue(""),
		},
	},
	types.CategoryLocations: {
		Category:    types.CategoryLocations,
		Description: "Where it lies, what it looks like, and who holds it.",
		CustomFields: map[string]types.Value{
			"population": types.NumberValue(0),
			"region":     types.StringValue(""),
			"climate":    types.StringValue(""),
		},
	},
	types.CategoryEvents: {
		Category:    types.CategoryEvents,
		Description: "What happened, when, and what changed because of it.",
		CustomFields: map[string]types.Value{
			"date":         types.StringValue(""),
			"participants": types.ListValue(),
		},
	},
	types.CategoryOrganizations: {
		Category:    types.CategoryOrganizations,
		Description: "Purpose, structure, and reach of the group.",
		CustomFields: map[string]types.Value{
			"founded": types.StringValue(""),
			"leader":  types.StringValue(""),
		},
	},
	types.CategoryArtifacts: {
		Category:    types.CategoryArtifacts,
		Description: "Origin, powers, and current whereabouts of the object.",
		CustomFields: map[string]types.Value{
			"origin": types.StringValue(""),
			"powers": types.ListValue(),
		},
	},
	types.CategoryConcepts: {
		Category:    types.CategoryConcepts,
		Description: "The idea, system, or force and how the world experiences it.",
		CustomFields: map[string]types.Value{
			"domain": types.StringValue(""),
		},
	},
	types.CategoryCreatures: {
		Category:    types.CategoryCreatures,
		Description: "Appearance, behavior, and where they are found.",
		CustomFields: map[string]types.Value{
			"habitat":      types.StringValue(""),
			"threat_level": types.NumberValue(0),
		},
	},
	types.CategoryCultures: {
		Category:    types.CategoryCultures,
		Description: "Values, customs, and daily life of the people.",
		CustomFields: map[string]types.Value{
			"language": types.StringValue(""),
			"values":   types.ListValue(),
		},
	},
	types.CategoryReligions: {
		Category:    types.CategoryReligions,
		Description: "Beliefs, rites, and the faithful.",
		CustomFields: map[string]types.Value{
			"deity":     types.StringValue(""),
			"practices": types.ListValue(),
		},
	},
	types.CategoryTechnologies: {
		Category:    types.CategoryTechnologies,
		Description: "What it does, who made it, and who can use it.",
		CustomFields: map[string]types.Value{
			"inventor": types.StringValue(""),
			"era":      types.StringValue(""),
		},
	},
}

// Template returns the starter entry for a category: the <category>.json
// override from the templates directory when one exists and decodes, the
// builtin otherwise. Broken overrides warn and fall back rather than block
// entry creation.
func (s *Store) Template(cat types.Category) (types.Entry, error) {
	if !cat.Valid() {
		return types.Entry{}, fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}
	builtin := builtinTemplates[cat]

	if s.cfg.TemplatesDir == "" {
		return builtin, nil
	}
	path := filepath.Join(s.cfg.TemplatesDir, string(cat)+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return builtin, nil
	}
	if err != nil {
		s.log.Warn("template unreadable, using builtin", zap.String("path", path), zap.Error(err))
		return builtin, nil
	}

	var tmpl types.Entry
	if err := json.Unmarshal(data, &tmpl); err != nil {
		s.log.Warn("template undecodable, using builtin", zap.String("path", path), zap.Error(err))
		return builtin, nil
	}
	tmpl.Category = cat
	return tmpl, nil
}

// WriteTemplates materializes the builtin templates into dir, one
// <category>.json per category. Existing files are left alone so user edits
// survive re-runs.
func WriteTemplates(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating templates directory: %w", err)
	}
	for _, cat := range types.Categories {
		path := filepath.Join(dir, string(cat)+".json")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := json.MarshalIndent(builtinTemplates[cat], "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s template: %w", cat, err)
		}
		data = append(data, '\n')
		if err := os.WriteFile(path, data, filePerm); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
