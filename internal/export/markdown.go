// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/lore-engine/pkg/types"
)

func markdownFilename(e types.Entry) string {
	name := e.Name
	if name == "" {
		name = e.ID
	}
	return strings.ReplaceAll(name, " ", "_") + ".md"
}

// renderMarkdown lays an entry out as a standalone document: title, category
// lines, description, tags, relationships, custom fields, metadata footer.
// nameOf resolves a relationship target to its display name; unresolved
// targets fall back to the raw id.
func renderMarkdown(e types.Entry, nameOf func(string) (string, bool)) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	fmt.Fprintf(&b, "**Category:** %s\n\n", e.Category)
	if e.Subcategory != "" {
		fmt.Fprintf(&b, "**Subcategory:** %s\n\n", e.Subcategory)
	}

	desc := e.Description
	if desc == "" {
		desc = "No description available."
	}
	fmt.Fprintf(&b, "## Description\n\n%s\n\n", desc)

	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(e.Tags, ", "))
	}

	if len(e.Relationships) > 0 {
		b.WriteString("## Relationships\n\n")
		for _, rel := range e.Relationships {
			target := rel.TargetID
			if name, ok := nameOf(rel.TargetID); ok {
				target = name
			}
			fmt.Fprintf(&b, "- **%s**: %s", rel.Type, target)
			if rel.Description != "" {
				fmt.Fprintf(&b, " - %s", rel.Description)
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	if len(e.CustomFields) > 0 {
		b.WriteString("## Additional Information\n\n")
		names := make([]string, 0, len(e.CustomFields))
		for name := range e.CustomFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "**%s:** %s\n\n", fieldLabel(name), e.CustomFields[name].String())
		}
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Created: %s*\n\n", footerDate(e.Metadata.CreatedDate))
	fmt.Fprintf(&b, "*Last Modified: %s*\n\n", footerDate(e.Metadata.ModifiedDate))
	fmt.Fprintf(&b, "*Status: %s*\n\n", footerStatus(e.Metadata.Status))

	return b.String()
}

// fieldLabel turns a snake_case field name into a display heading, e.g.
// "birth_date" becomes "Birth Date".
func fieldLabel(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func footerDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.UTC().Format(time.RFC3339)
}

func footerStatus(s types.Status) string {
	if s == "" {
		return "Unknown"
	}
	return string(s)
}
