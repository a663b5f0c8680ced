// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// Create persists a new entry and returns its ID, generating a UUID when the
// entry does not bring one. Metadata is stamped here: version 1, draft
// status, creation and modification set to now, author from config. The ID
// must be unique across the whole corpus, not just its category.
func (s *Store) Create(entry types.Entry) (string, error) {
	if !entry.Category.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, entry.Category)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	entry.Metadata = types.Metadata{
		CreatedDate:  now,
		ModifiedDate: now,
		Author:       s.cfg.Author,
		Version:      1,
		Status:       types.StatusDraft,
	}

	if err := s.validate.Struct(entry); err != nil {
		return "", fmt.Errorf("validating entry: %w", err)
	}

	err := s.withLock(func() error {
		if _, _, _, err := s.locate(entry.ID); err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		cf, err := s.readCategory(entry.Category)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		cf.Entries[entry.ID] = raw
		return s.writeCategory(entry.Category, cf)
	})
	if err != nil {
		return "", err
	}

	s.log.Info("created entry",
		zap.String("id", entry.ID),
		zap.String("category", string(entry.Category)))
	return entry.ID, nil
}

// Get returns the entry with the given ID, scanning categories in canonical
// order.
func (s *Store) Get(id string) (types.Entry, error) {
	_, _, raw, err := s.locate(id)
	if err != nil {
		return types.Entry{}, err
	}
	return decodeEntry(id, raw)
}

// List returns entries, all categories or one, sorted by ID within each
// category, capped at limit (default 50). Undecodable records are skipped.
func (s *Store) List(category types.Category, limit int) ([]types.Entry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	categories := types.Categories
	if category != "" {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
		categories = []types.Category{category}
	}

	out := []types.Entry{}
	for _, cat := range categories {
		entries, err := s.Entries(cat)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			out = append(out, entries[id])
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Update applies a caller-supplied mutation to the entry under the corpus
// lock, bumps the version, refreshes the modification time, and writes the
// result back. The ID is reasserted after the mutation; a category change is
// rejected. The updated entry is returned.
func (s *Store) Update(id string, apply func(*types.Entry) error) (types.Entry, error) {
	var updated types.Entry

	err := s.withLock(func() error {
		cat, cf, raw, err := s.locate(id)
		if err != nil {
			return err
		}
		entry, err := decodeEntry(id, raw)
		if err != nil {
			return err
		}

		if err := apply(&entry); err != nil {
			return err
		}
		entry.ID = id
		if entry.Category != cat {
			return fmt.Errorf("%w: %s", ErrCategoryChange, id)
		}

		entry.Metadata.ModifiedDate = time.Now().UTC()
		if entry.Metadata.Version < 1 {
			entry.Metadata.Version = 1
		}
		entry.Metadata.Version++

		if err := s.validate.Struct(entry); err != nil {
			return fmt.Errorf("validating entry: %w", err)
		}

		encoded, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encoding entry: %w", err)
		}
		cf.Entries[id] = encoded
		if err := s.writeCategory(cat, cf); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return types.Entry{}, err
	}

	s.log.Info("updated entry",
		zap.String("id", id),
		zap.Int("version", updated.Metadata.Version))
	return updated, nil
}

// Delete removes the entry and returns it.
func (s *Store) Delete(id string) (types.Entry, error) {
	var removed types.Entry

	err := s.withLock(func() error {
		cat, cf, raw, err := s.locate(id)
		if err != nil {
			return err
		}
		entry, err := decodeEntry(id, raw)
		if err != nil {
			return err
		}
		delete(cf.Entries, id)
		if err := s.writeCategory(cat, cf); err != nil {
			return err
		}
		removed = entry
		return nil
	})
	if err != nil {
		return types.Entry{}, err
	}

	s.log.Info("deleted entry", zap.String("id", id))
	return removed, nil
}

// AddRelationship appends a directed link from source to target on the
// source entry. Both entries must exist and the type must be valid; a zero
// strength gets the default. The link is one-way: declare the inverse on the
// target to make it mutual.
func (s *Store) AddRelationship(sourceID, targetID string, relType types.RelationType, description string, strength float64) error {
	if !relType.Valid() {
		return fmt.Errorf("invalid relationship type: %q", relType)
	}
	if strength == 0 {
		strength = types.DefaultStrength
	}
	if strength < 0 || strength > 10 {
		return fmt.Errorf("relationship strength %v outside [0, 10]", strength)
	}

	if _, err := s.Get(targetID); err != nil {
		return fmt.Errorf("relationship target: %w", err)
	}

	_, err := s.Update(sourceID, func(e *types.Entry) error {
		e.Relationships = append(e.Relationships, types.Relationship{
			TargetID:    targetID,
			Type:        relType,
			Strength:    strength,
			Description: description,
		})
		return nil
	})
	return err
}
