// Command handover runs the SLOC handover tracker.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slocops/handover/internal/config"
)

type rootOptions struct {
	envFile string
	addr    string
	dbPath  string
	logPath string
	debug   bool

	cfg      *config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "handover",
		Short:         "Track stock handovers between SLOC 1000 and 1001",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = opts.addr
			}
			if flags.Changed("db") {
				cfg.DBPath = opts.dbPath
			}
			if flags.Changed("log") {
				cfg.LogPath = opts.logPath
			}
			opts.cfg = cfg

			level := slog.LevelInfo
			if opts.debug {
				level = slog.LevelDebug
			}
			closeLog, err := setupLogger(cfg.LogPath, level)
			if err != nil {
				return err
			}
			opts.closeLog = closeLog
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.closeLog != nil {
				opts.closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment (skipped if missing)")
	pf.StringVarP(&opts.addr, "addr", "a", ":8080", "listen address (overrides HANDOVER_ADDR)")
	pf.StringVarP(&opts.dbPath, "db", "d", "handover.sqlite3", "SQLite database path (overrides HANDOVER_DB)")
	pf.StringVarP(&opts.logPath, "log", "l", "", "log file path (overrides HANDOVER_LOG)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(opts), newInventoryCmd(opts), newInsightsCmd(opts))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
