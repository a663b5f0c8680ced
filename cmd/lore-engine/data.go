// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lore-engine/internal/export"
	"github.com/pdiddy/lore-engine/internal/importer"
	"github.com/pdiddy/lore-engine/pkg/types"
)

// --- stats command ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the corpus and its relationship graph",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	stats := eng.Statistics()

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(stats)
	}

	fmt.Printf("%-15s %d\n", "Entries:", stats.TotalEntries)
	fmt.Printf("%-15s %d\n", "Relationships:", stats.TotalRelationships)
	fmt.Printf("%-15s %d\n", "Orphaned:", len(stats.OrphanedEntries))
	fmt.Printf("%-15s %d\n", "Broken links:", len(stats.BrokenReferences))

	if len(stats.Categories) > 0 {
		fmt.Println("\nPer category:")
		for _, cat := range types.Categories {
			if n := stats.Categories[cat]; n > 0 {
				fmt.Printf("  %-14s %d\n", cat, n)
			}
		}
	}
	if len(stats.OrphanedEntries) > 0 {
		fmt.Printf("\nOrphaned entries: %s\n", strings.Join(stats.OrphanedEntries, ", "))
	}
	if len(stats.BrokenReferences) > 0 {
		fmt.Println("\nBroken references:")
		for _, br := range stats.BrokenReferences {
			fmt.Printf("  %s -> %s (%s)\n", br.SourceID, br.TargetID, br.Type)
		}
	}
	return nil
}

// --- graph command ---

var graphCmd = &cobra.Command{
	Use:   "graph [ids...]",
	Short: "Show the relationship graph, whole or induced over given entries",
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	view := eng.GraphView(args...)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(view)
	}

	fmt.Printf("Nodes: %d   Edges: %d\n", len(view.Nodes), len(view.Edges))
	if len(view.Edges) > 0 {
		fmt.Println()
		for _, edge := range view.Edges {
			line := fmt.Sprintf("%s -> %s  %s (%.1f)", edge.Source, edge.Target, edge.Type, edge.Strength)
			if edge.Description != "" {
				line += "  " + edge.Description
			}
			fmt.Println(line)
		}
	}
	return nil
}

// --- export command ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus to markdown, YAML, or JSON",
	Long: `Export writes the whole corpus under the output directory. Markdown
produces one document per entry, grouped by category; yaml and json
produce a single dump file.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ecfg := cfg.Export
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		ecfg.Format = types.ExportFormat(format)
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		ecfg.OutputDir = output
	}

	eng, _, err := buildEngine()
	if err != nil {
		return err
	}
	path, err := export.New(eng, ecfg, cliLogger()).Export()
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// --- backup command ---

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the data directory into the backup directory",
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	dir, err := st.Backup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", dir)
	return nil
}

// --- import command ---

var importCmd = &cobra.Command{
	Use:   "import [states.csv]",
	Short: "Import location entries from a map-generator states CSV",
	Long: `Import reads a states CSV exported from a map generator and creates one
location entry per state plus one per capital city, linked to its state.
With --world every imported state is also linked to that world entry.`,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide the CSV file to import")
	}
	world, _ := cmd.Flags().GetString("world")

	st, err := openStore()
	if err != nil {
		return err
	}
	report, err := importer.New(st, cliLogger()).States(args[0], world)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Printf("Imported %d entries from %s (%d skipped, %d failed)\n",
			report.Created, args[0], report.Skipped, report.Failed)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d row(s) failed import", report.Failed)
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	graphCmd.Flags().Bool("json", false, "output the graph as JSON")

	exportCmd.Flags().String("format", "", "export format: markdown, yaml, or json (default: configured format)")
	exportCmd.Flags().String("output", "", "output directory (default: configured directory)")

	importCmd.Flags().String("world", "", "world entry name to link imported states to")
	importCmd.Flags().Bool("json", false, "output the import report as JSON")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(importCmd)
}
