// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/lore-engine/internal/store"
)

const configName = "lore-engine.yaml"

// starterConfig is written by init when no config file exists yet.
const starterConfig = `# lore-engine configuration.
engine:
  fuzzy_threshold: 0.6
  max_results: 10
  max_depth: 1
  min_similarity: 0.3

store:
  data_dir: %s
  backup_dir: %s
  templates_dir: %s
  lock_timeout: 5s
  author: ""

export:
  output_dir: %s
  format: markdown

server:
  addr: ":8080"
  watch: true
  shutdown_timeout: 10s
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a lore project in the current directory",
	Long: `Init creates the data, backup, templates, and export directories, writes
the builtin entry templates, and drops a starter config file. Existing
files are left alone, so init is safe to re-run.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	sc := storeConfig()
	if sc.DataDir == "" {
		sc.DataDir = "lore"
	}
	if sc.BackupDir == "" {
		sc.BackupDir = "backups"
	}
	if sc.TemplatesDir == "" {
		sc.TemplatesDir = "templates"
	}
	outputDir := cfg.Export.OutputDir
	if outputDir == "" {
		outputDir = "export"
	}

	for _, dir := range []string{sc.DataDir, sc.BackupDir, sc.TemplatesDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := store.WriteTemplates(sc.TemplatesDir); err != nil {
		return err
	}
	fmt.Printf("Created %s/, %s/, %s/, %s/\n", sc.DataDir, sc.BackupDir, sc.TemplatesDir, outputDir)

	if _, err := os.Stat(configName); err == nil {
		fmt.Printf("%s already exists, leaving it alone\n", configName)
		return nil
	}
	content := fmt.Sprintf(starterConfig, sc.DataDir, sc.BackupDir, sc.TemplatesDir, outputDir)
	if err := os.WriteFile(configName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configName, err)
	}
	fmt.Printf("Wrote %s\n", configName)
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
