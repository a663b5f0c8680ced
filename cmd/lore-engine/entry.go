// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lore-engine/pkg/types"
)

// --- create command ---

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a lore entry",
	Long: `Create adds an entry to the corpus. The category is required; the ID is
generated unless --id provides one. With --from-template the category's
starter template preloads the description and custom fields.`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide the entry name")
	}
	category, _ := cmd.Flags().GetString("category")
	cat := types.Category(category)
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q (one of: %s)", category, categoryList())
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	var entry types.Entry
	if fromTemplate, _ := cmd.Flags().GetBool("from-template"); fromTemplate {
		entry, err = st.Template(cat)
		if err != nil {
			return err
		}
	}
	entry.Name = strings.Join(args, " ")
	entry.Category = cat
	entry.ID, _ = cmd.Flags().GetString("id")
	if description, _ := cmd.Flags().GetString("description"); description != "" {
		entry.Description = description
	}
	if subcategory, _ := cmd.Flags().GetString("subcategory"); subcategory != "" {
		entry.Subcategory = subcategory
	}
	if tags, _ := cmd.Flags().GetString("tags"); tags != "" {
		entry.Tags = splitTags(tags)
	}
	fields, _ := cmd.Flags().GetStringArray("set")
	if err := applyFields(&entry, fields); err != nil {
		return err
	}

	id, err := st.Create(entry)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s entry %s\n", cat, id)
	return nil
}

// --- get command ---

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a single entry",
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one entry ID")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	entry, err := st.Get(args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(entry)
	}
	printEntry(entry)
	return nil
}

// printEntry renders one entry as labeled lines.
func printEntry(e types.Entry) {
	fmt.Printf("%-13s %s\n", "ID:", e.ID)
	fmt.Printf("%-13s %s\n", "Name:", e.Name)
	fmt.Printf("%-13s %s\n", "Category:", e.Category)
	if e.Subcategory != "" {
		fmt.Printf("%-13s %s\n", "Subcategory:", e.Subcategory)
	}
	if e.Metadata.Status != "" {
		fmt.Printf("%-13s %s (v%d)\n", "Status:", e.Metadata.Status, e.Metadata.Version)
	}
	if len(e.Tags) > 0 {
		fmt.Printf("%-13s %s\n", "Tags:", strings.Join(e.Tags, ", "))
	}
	if e.Description != "" {
		fmt.Printf("%-13s %s\n", "Description:", e.Description)
	}
	if len(e.Relationships) > 0 {
		fmt.Println("Relationships:")
		for _, rel := range e.Relationships {
			line := fmt.Sprintf("  %s -> %s (strength %.1f)", rel.Type, rel.TargetID, rel.Strength)
			if rel.Description != "" {
				line += "  " + rel.Description
			}
			fmt.Println(line)
		}
	}
	if len(e.CustomFields) > 0 {
		fmt.Println("Fields:")
		names := make([]string, 0, len(e.CustomFields))
		for name := range e.CustomFields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, e.CustomFields[name])
		}
	}
}

// --- list command ---

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List entries, all categories or one",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	var category types.Category
	if len(args) > 0 {
		category = types.Category(args[0])
		if !category.Valid() {
			return fmt.Errorf("unknown category %q (one of: %s)", args[0], categoryList())
		}
	}
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := openStore()
	if err != nil {
		return err
	}
	entries, err := st.List(category, limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-28s  %-14s  %-24s  %s\n", "ID", "Category", "Name", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-28s  %-14s  %-24s  %s\n",
			clip(e.ID, 28), e.Category, clip(e.Name, 24), clip(e.Description, 30))
	}
	fmt.Fprintf(os.Stdout, "\n%d entries\n", len(entries))
	return nil
}

// --- update command ---

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update fields on an existing entry",
	Long: `Update rewrites the provided fields on an entry. Only flags that are set
change anything; --tags replaces the whole tag list. The category cannot
change once an entry is created.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one entry ID")
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	fields, _ := cmd.Flags().GetStringArray("set")
	updated, err := st.Update(args[0], func(e *types.Entry) error {
		if cmd.Flags().Changed("name") {
			e.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("description") {
			e.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("subcategory") {
			e.Subcategory, _ = cmd.Flags().GetString("subcategory")
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			e.Metadata.Status = types.Status(status)
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			e.Tags = splitTags(tags)
		}
		return applyFields(e, fields)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s (now v%d)\n", updated.ID, updated.Metadata.Version)
	return nil
}

// --- delete command ---

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove an entry from the corpus",
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one entry ID")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	removed, err := st.Delete(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %s (%s)\n", removed.ID, removed.Name)
	return nil
}

// --- relate command ---

var relateCmd = &cobra.Command{
	Use:   "relate [source-id] [target-id]",
	Short: "Link two entries with a typed relationship",
	Long: `Relate declares a directed relationship from the source entry to the
target. Links are one-way: run relate twice, swapping the IDs, to make a
relationship mutual.`,
	RunE: runRelate,
}

func runRelate(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("provide the source and target entry IDs")
	}
	relType, _ := cmd.Flags().GetString("type")
	rt := types.RelationType(relType)
	if !rt.Valid() {
		return fmt.Errorf("unknown relationship type %q (one of: %s)", relType, relationTypeList())
	}
	description, _ := cmd.Flags().GetString("description")
	strength, _ := cmd.Flags().GetFloat64("strength")

	st, err := openStore()
	if err != nil {
		return err
	}
	if err := st.AddRelationship(args[0], args[1], rt, description, strength); err != nil {
		return err
	}
	fmt.Printf("Related %s -> %s (%s)\n", args[0], args[1], rt)
	return nil
}

// --- shared helpers ---

func categoryList() string {
	names := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func relationTypeList() string {
	names := make([]string, len(types.RelationTypes))
	for i, r := range types.RelationTypes {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseFieldValue interprets a flag-supplied custom field value: numbers and
// booleans become typed values, comma-separated text becomes a list, anything
// else stays a string.
func parseFieldValue(s string) types.Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return types.NumberValue(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return types.BoolValue(b)
	}
	if strings.Contains(s, ",") {
		return types.ListValue(splitTags(s)...)
	}
	return types.StringValue(s)
}

func applyFields(e *types.Entry, kvs []string) error {
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("malformed --set %q: want key=value", kv)
		}
		if e.CustomFields == nil {
			e.CustomFields = make(map[string]types.Value)
		}
		e.CustomFields[key] = parseFieldValue(value)
	}
	return nil
}

func init() {
	createCmd.Flags().String("category", "", "entry category (required)")
	createCmd.Flags().String("id", "", "explicit entry ID (default: generated)")
	createCmd.Flags().String("description", "", "entry description")
	createCmd.Flags().String("subcategory", "", "entry subcategory")
	createCmd.Flags().String("tags", "", "tags (comma-separated)")
	createCmd.Flags().StringArray("set", nil, "custom field as key=value (repeatable)")
	createCmd.Flags().Bool("from-template", false, "preload the category template")

	getCmd.Flags().Bool("json", false, "output the entry as JSON")

	listCmd.Flags().Int("limit", 20, "maximum entries to list")
	listCmd.Flags().Bool("json", false, "output entries as JSON")

	updateCmd.Flags().String("name", "", "new display name")
	updateCmd.Flags().String("description", "", "new description")
	updateCmd.Flags().String("subcategory", "", "new subcategory")
	updateCmd.Flags().String("status", "", "lifecycle status: draft, canon, or deprecated")
	updateCmd.Flags().String("tags", "", "replacement tag list (comma-separated)")
	updateCmd.Flags().StringArray("set", nil, "custom field as key=value (repeatable)")

	relateCmd.Flags().String("type", "", "relationship type (required)")
	relateCmd.Flags().String("description", "", "what the relationship means")
	relateCmd.Flags().Float64("strength", 0, "relationship strength 0-10 (default 5)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(relateCmd)
}
