// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

// --- search command ---

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Fuzzy-search the corpus",
	Long: `Search scores every entry against the query with fuzzy matching over
names, descriptions, tags, and custom fields, and returns the hits above
the configured threshold, best first. Filters narrow the candidates
before scoring.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	opts := lore.SearchOptions{}
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		opts.Category = types.Category(category)
		if !opts.Category.Valid() {
			return fmt.Errorf("unknown category %q (one of: %s)", category, categoryList())
		}
	}
	if tags, _ := cmd.Flags().GetString("tags"); tags != "" {
		opts.Tags = splitTags(tags)
	}
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	results := eng.Search(strings.Join(args, " "), opts)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-24s  %-14s  %s\n",
		"Rank", "Score", "Name", "Category", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-6.1f  %-24s  %-14s  %s\n",
			i+1, r.Score, clip(r.Entry.Name, 24), r.Entry.Category, clip(r.Entry.Description, 44))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- related command ---

var relatedCmd = &cobra.Command{
	Use:   "related [id]",
	Short: "Walk relationships outward from an entry",
	Long: `Related follows relationship edges outward from an entry, breadth-first,
up to the requested depth. With --type only edges of that type are
followed.`,
	RunE: runRelated,
}

func runRelated(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one entry ID")
	}
	var relType types.RelationType
	if typeStr, _ := cmd.Flags().GetString("type"); typeStr != "" {
		relType = types.RelationType(typeStr)
		if !relType.Valid() {
			return fmt.Errorf("unknown relationship type %q (one of: %s)", typeStr, relationTypeList())
		}
	}
	depth, _ := cmd.Flags().GetInt("depth")

	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	results := eng.Related(args[0], relType, depth)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-16s  %-8s  %-24s  %s\n",
		"Depth", "Type", "Strength", "Entry", "Description")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-5d  %-16s  %-8.1f  %-24s  %s\n",
			r.Depth, r.Edge.Type, r.Edge.Strength, clip(r.Entry.Name, 24), clip(r.Edge.Description, 30))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- suggest command ---

var suggestCmd = &cobra.Command{
	Use:   "suggest [id]",
	Short: "Suggest entries similar to an existing one",
	Long: `Suggest ranks the rest of the corpus by content similarity to an entry,
using shared tags and fuzzy text comparison, and returns the closest
matches. Useful for spotting entries that ought to be related.`,
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one entry ID")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	suggestions := eng.Suggest(args[0], limit)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(suggestions)
	}
	if len(suggestions) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-24s  %-14s  %s\n",
		"Rank", "Similarity", "Name", "Category", "Tags")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for i, s := range suggestions {
		fmt.Fprintf(os.Stdout, "%-4d  %-10.2f  %-24s  %-14s  %s\n",
			i+1, s.Similarity, clip(s.Entry.Name, 24), s.Entry.Category, strings.Join(s.Entry.Tags, ", "))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(suggestions))
	return nil
}

func init() {
	searchCmd.Flags().String("category", "", "only match entries in this category")
	searchCmd.Flags().String("tags", "", "only match entries carrying one of these tags (comma-separated)")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = configured default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	relatedCmd.Flags().String("type", "", "only follow edges of this relationship type")
	relatedCmd.Flags().Int("depth", 0, "traversal depth (0 = configured default)")
	relatedCmd.Flags().Bool("json", false, "output results as JSON")

	suggestCmd.Flags().Int("limit", 0, "maximum suggestions (0 = configured default)")
	suggestCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(suggestCmd)
}
