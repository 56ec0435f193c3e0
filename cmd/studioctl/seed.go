package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/venapictures/studio/internal/seed"
	"github.com/venapictures/studio/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fixture records that are not already present",
	Long: `Insert fixture records into the studio tables. Without --file the
built-in fixture is used: an admin account, the standard packages and
add-ons and a starter studio profile. Running it twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringP("file", "f", "", "YAML or JSON fixture to load instead of the built-in one")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	fixture := seed.Default()
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := seed.LoadFile(path)
		if err != nil {
			return err
		}
		fixture = f
	}

	cfg, db, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	rep, err := seed.New(store.NewPostgresTables(db.Pool()), cfg.BcryptCost).Run(cmd.Context(), fixture)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
