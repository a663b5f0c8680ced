// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}
	assert.False(t, Category("weather").Valid())
	assert.False(t, Category("").Valid())
}

func TestRelationTypeValid(t *testing.T) {
	for _, r := range RelationTypes {
		assert.True(t, r.Valid(), "relation type %q should be valid", r)
	}
	assert.False(t, RelationType("knows_of").Valid())
	assert.False(t, RelationType("").Valid())
}

func TestEntryHasAnyTag(t *testing.T) {
	e := Entry{Tags: []string{"mage", "zeloria"}}

	assert.True(t, e.HasTag("mage"))
	assert.False(t, e.HasTag("Mage"), "tag matching is exact")
	assert.True(t, e.HasAnyTag([]string{"capital", "zeloria"}))
	assert.False(t, e.HasAnyTag([]string{"capital", "ruins"}))
	assert.False(t, e.HasAnyTag(nil))
}

func TestEntryJSONShape(t *testing.T) {
	raw := `{
		"id": "tharos_the_wise",
		"name": "Tharos the Wise",
		"category": "characters",
		"description": "Archmage of the northern circle.",
		"tags": ["mage", "zeloria"],
		"relationships": [
			{"target_id": "zeloria_city", "relationship_type": "located_in", "strength": 8}
		],
		"custom_fields": {"age": 340, "titles": ["Archmage", "Loremaster"]},
		"metadata": {"created_date": "2026-08-25T10:00:00Z", "version": 1, "status": "canon"}
	}`

	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, "tharos_the_wise", e.ID)
	assert.Equal(t, CategoryCharacters, e.Category)
	require.Len(t, e.Relationships, 1)
	assert.Equal(t, RelLocatedIn, e.Relationships[0].Type)
	assert.Equal(t, 8.0, e.Relationships[0].Strength)
	assert.Equal(t, "340", e.CustomFields["age"].String())
	assert.Equal(t, []string{"Archmage", "Loremaster"}, e.CustomFields["titles"].List())
	assert.Equal(t, StatusCanon, e.Metadata.Status)
	assert.Equal(t, 1, e.Metadata.Version)
}
