package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/venapictures/studio/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(mg *database.Migrator) error { return mg.Up() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration, dropping all studio tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to drop every table without --yes")
		}
		return withMigrator(func(mg *database.Migrator) error { return mg.Down() })
	},
}

func init() {
	migrateDownCmd.Flags().Bool("yes", false, "confirm dropping every table")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func withMigrator(fn func(*database.Migrator) error) (err error) {
	cfg, err := loadPostgres()
	if err != nil {
		return err
	}
	mg, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, mg.Close())
	}()
	return fn(mg)
}
