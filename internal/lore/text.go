// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lore

import (
	"sort"
	"strings"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// SearchableText derives the lower-cased blob an entry is matched against:
// name, description, tags, subcategory, then custom field values with lists
// flattened element-wise and scalars stringified. Field names are walked in
// sorted order and empty parts are dropped, so the output is a pure,
// rebuild-stable function of the entry.
func SearchableText(e types.Entry) string {
	parts := []string{
		e.Name,
		e.Description,
		strings.Join(e.Tags, " "),
		e.Subcategory,
	}

	names := make([]string, 0, len(e.CustomFields))
	for name := range e.CustomFields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, e.CustomFields[name].Strings()...)
	}

	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}
