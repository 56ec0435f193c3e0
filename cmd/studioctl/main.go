// Command studioctl runs maintenance tasks against the studio database:
// schema migrations, fixture seeding and ad-hoc SQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/venapictures/studio/internal/config"
	"github.com/venapictures/studio/internal/database"
)

var rootCmd = &cobra.Command{
	Use:           "studioctl",
	Short:         "Maintenance commands for the studio backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, sqlCmd)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadPostgres reads the configuration and insists on the postgres backend,
// which is the only one with state outside the process.
func loadPostgres() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.Backend != config.BackendPostgres {
		return nil, fmt.Errorf("studioctl needs BACKEND=%s, got %q", config.BackendPostgres, cfg.Backend)
	}
	return cfg, nil
}

func connect(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := loadPostgres()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
