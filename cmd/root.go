package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inboxd/internal/config"
	"inboxd/internal/db"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "inboxd",
	Short: "Personal inbox for quick notes, tags, and comment threads",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the inbox database (overrides DATABASE_URL)")
}

// loadConfig reads the environment config and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DatabaseURL = dbPath
	}
	return cfg, nil
}

// openStore opens the configured database and brings the schema up to date.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*db.DB, error) {
	store, err := db.Open(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
