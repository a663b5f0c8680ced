// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Category classifies an entry into one of the fixed top-level groups.
type Category string

const (
	CategoryCharacters    Category = "characters"
	CategoryLocations     Category = "locations"
	CategoryEvents        Category = "events"
	CategoryOrganizations Category = "organizations"
	CategoryArtifacts     Category = "artifacts"
	CategoryConcepts      Category = "concepts"
	CategoryCreatures     Category = "creatures"
	CategoryCultures      Category = "cultures"
	CategoryReligions     Category = "religions"
	CategoryTechnologies  Category = "technologies"
)

// Categories lists every valid category in canonical order. Code that walks
// the whole corpus iterates this slice so that results are deterministic.
var Categories = []Category{
	CategoryCharacters,
	CategoryLocations,
	CategoryEvents,
	CategoryOrganizations,
	CategoryArtifacts,
	CategoryConcepts,
	CategoryCreatures,
	CategoryCultures,
	CategoryReligions,
	CategoryTechnologies,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RelationType names the kind of a directed link between two entries.
type RelationType string

const (
	RelLocatedIn      RelationType = "located_in"
	RelPartOf         RelationType = "part_of"
	RelMemberOf       RelationType = "member_of"
	RelAllyOf         RelationType = "ally_of"
	RelEnemyOf        RelationType = "enemy_of"
	RelFamilyOf       RelationType = "family_of"
	RelCreatedBy      RelationType = "created_by"
	RelOwns           RelationType = "owns"
	RelParticipatedIn RelationType = "participated_in"
	RelPredecessorOf  RelationType = "predecessor_of"
	RelSuccessorOf    RelationType = "successor_of"
	RelRelatedTo      RelationType = "related_to"
)

// RelationTypes lists every valid relationship type.
var RelationTypes = []RelationType{
	RelLocatedIn,
	RelPartOf,
	RelMemberOf,
	RelAllyOf,
	RelEnemyOf,
	RelFamilyOf,
	RelCreatedBy,
	RelOwns,
	RelParticipatedIn,
	RelPredecessorOf,
	RelSuccessorOf,
	RelRelatedTo,
}

// Valid reports whether r is one of the known relationship types.
func (r RelationType) Valid() bool {
	for _, known := range RelationTypes {
		if r == known {
			return true
		}
	}
	return false
}

// DefaultStrength is assumed for relationships that do not declare one.
const DefaultStrength = 5.0

// Relationship is a directed, typed link from the entry that declares it to
// another entry. Links are one-way as declared; a mutual relationship needs
// a declaration on each side.
type Relationship struct {
	// TargetID identifies the entry this link points at. The target is not
	// required to exist; dangling links are reported, not rejected.
	TargetID string `json:"target_id" yaml:"target_id" validate:"required"`

	// Type names the kind of relationship.
	Type RelationType `json:"relationship_type" yaml:"relationship_type" validate:"required,oneof=located_in part_of member_of ally_of enemy_of family_of created_by owns participated_in predecessor_of successor_of related_to"`

	// Strength grades the link from 0 to 10 (default 5).
	Strength float64 `json:"strength,omitempty" yaml:"strength,omitempty" validate:"min=0,max=10"`

	// Description optionally explains the link in prose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Status is an entry's lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusCanon      Status = "canon"
	StatusDeprecated Status = "deprecated"
)

// Metadata carries bookkeeping fields maintained by the store on every write.
type Metadata struct {
	// CreatedDate is when the entry was first persisted.
	CreatedDate time.Time `json:"created_date" yaml:"created_date"`

	// ModifiedDate is when the entry was last written.
	ModifiedDate time.Time `json:"modified_date" yaml:"modified_date"`

	// Author names who created the entry.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Version counts writes, starting at 1 on create.
	Version int `json:"version" yaml:"version"`

	// Status is the entry's lifecycle state: draft, canon, or deprecated.
	Status Status `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=draft canon deprecated"`
}

// Entry is a single lore record. The ID is unique across the whole corpus,
// not just within its category, and is immutable once created.
type Entry struct {
	// ID uniquely identifies the entry (e.g. "tharos_the_wise").
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is the entry's display name.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Category places the entry in one of the fixed top-level groups.
	Category Category `json:"category" yaml:"category" validate:"required,oneof=characters locations events organizations artifacts concepts creatures cultures religions technologies"`

	// Subcategory optionally refines the category (e.g. "city" under locations).
	Subcategory string `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`

	// Description is the entry's prose body.
	Description string `json:"description" yaml:"description"`

	// Tags are free-form lowercase labels used for filtering and matching.
	// Insertion order is preserved for display.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Relationships lists the directed links this entry declares to others.
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty" validate:"dive"`

	// CustomFields holds category-specific fields not covered by the common
	// schema, keyed by field name.
	CustomFields map[string]Value `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`

	// Metadata carries bookkeeping about the entry's lifecycle.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// HasTag reports whether the entry carries the exact tag.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the entry carries at least one of the given tags.
func (e Entry) HasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if e.HasTag(tag) {
			return true
		}
	}
	return false
}
