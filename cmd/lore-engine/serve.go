// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/internal/server"
	"github.com/pdiddy/lore-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus over HTTP",
	Long: `Serve indexes the corpus and exposes search, traversal, and statistics
endpoints under /api/v1, plus /health and /metrics. With --watch the data
directory is watched and the index refreshes when entry files change.
The server runs until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := serverLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.New(storeConfig(), log)
	if err != nil {
		return err
	}
	eng := lore.NewEngine(cfg.Engine, st, log)

	scfg := cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		scfg.Addr = addr
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		scfg.Watch = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(scfg, eng, log).Run(ctx, st.DataDir())
}

// serverLogger always logs: development output with --verbose, structured
// production output otherwise.
func serverLogger() (*zap.Logger, error) {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Bool("watch", false, "refresh the index when entry files change")

	rootCmd.AddCommand(serveCmd)
}
