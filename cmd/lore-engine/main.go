// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lore-engine CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/internal/store"
	"github.com/pdiddy/lore-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the effective configuration, loaded from the config file and
// environment before any command runs. Flags override individual fields.
var cfg types.Config

// rootCmd is the base command for the lore-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "lore-engine",
	Short: "Manage and query a structured lore corpus",
	Long: `lore-engine manages a lore corpus for a fictional world: characters,
locations, events, organizations, and the relationships between them.
Entries live in one JSON file per category under a data directory; the
engine indexes them for fuzzy search, graph traversal, and content
similarity queries.

Writes (create, update, delete, relate) go through the file store.
Queries (search, related, suggest, stats, graph) run against the index.
Serve mode exposes the same queries over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lore-engine.yaml or ~/.config/lore-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the per-category entry files")
	rootCmd.PersistentFlags().String("author", "", "author recorded on created entries")
	rootCmd.PersistentFlags().Bool("verbose", false, "log engine and store activity to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lore-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lore-engine"))
		}
	}

	viper.SetEnvPrefix("LORE_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// --- shared helpers ---

// cliLogger returns the logger commands hand to the store and engine.
// Logging is off unless --verbose is set, so table output stays clean.
func cliLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// storeConfig is the effective store configuration: file and environment
// config with command-line overrides applied.
func storeConfig() types.StoreConfig {
	sc := cfg.Store
	if dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dataDir != "" {
		sc.DataDir = dataDir
	}
	if author, _ := rootCmd.PersistentFlags().GetString("author"); author != "" {
		sc.Author = author
	}
	return sc
}

func openStore() (*store.Store, error) {
	return store.New(storeConfig(), cliLogger())
}

// buildEngine opens the store and indexes the corpus it holds.
func buildEngine() (*lore.Engine, *store.Store, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return lore.NewEngine(cfg.Engine, st, cliLogger()), st, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// clip shortens s to fit a table column of the given width.
func clip(s string, width int) string {
	if len(s) > width {
		return s[:width-3] + "..."
	}
	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
