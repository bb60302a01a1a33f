package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/polyglot/internal/config"
	"github.com/abhisek/polyglot/internal/library"
	"github.com/abhisek/polyglot/internal/logging"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "polyglot",
	Short: "Terminal language trainer",
	Long:  "Polyglot: flashcards, dialogs, grammar tables and quizzes for language learners, right in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides POLYGLOT_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides POLYGLOT_LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then POLYGLOT_DB (via config), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// env is what every subcommand needs: configuration, the log file and the
// store. A nil store means the database could not be opened; commands that
// only touch the library keep working in memory.
type env struct {
	cfg      config.Config
	dbPath   string
	store    *store.Store
	closeLog func() error
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e := &env{cfg: cfg, dbPath: dbPath, closeLog: func() error { return nil }}
	if closeLog, err := logging.Setup(cfg.LogPath(dbPath), level); err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
		slog.SetDefault(logging.Discard())
	} else {
		e.closeLog = closeLog
	}

	st, err := store.Open(dbPath)
	if err != nil {
		slog.Warn("store unavailable", "path", dbPath, "error", err)
		fmt.Fprintln(os.Stderr, "warning: progress will not be saved:", err)
	} else {
		e.store = st
	}
	return e, nil
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			slog.Warn("close store", "error", err)
		}
	}
	_ = e.closeLog()
}

// requireStore fails commands that read event history.
func (e *env) requireStore() (*store.Store, error) {
	if e.store == nil {
		return nil, fmt.Errorf("database %s is unavailable", e.dbPath)
	}
	return e.store, nil
}

func (e *env) events() store.EventRepo {
	if e.store == nil {
		return nil
	}
	return e.store.EventRepo()
}

func (e *env) library(ctx context.Context) *library.Library {
	var kv store.KV
	if e.store != nil {
		kv = e.store.KV()
	}
	return library.Open(ctx, kv, library.Options{RecentWindow: e.cfg.RecentWindow})
}

func (e *env) bank() *quiz.Bank {
	if e.cfg.HasSeed {
		return quiz.NewBank(quiz.NewRand(e.cfg.Seed), quiz.DefaultConfig())
	}
	return quiz.NewBank(nil, quiz.DefaultConfig())
}
