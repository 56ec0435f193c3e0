package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/venapictures/studio/internal/console"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a SQL statement and print or export the rows",
	Example: `  studioctl sql "SELECT name, status FROM clients"
  studioctl sql --format xlsx --out clients.xlsx "SELECT * FROM clients"`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().String("format", console.FormatJSON, "output format: json or xlsx")
	sqlCmd.Flags().StringP("out", "o", "", "write to this file instead of stdout (required for xlsx)")
}

func runSQL(cmd *cobra.Command, args []string) (err error) {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	switch format {
	case console.FormatJSON:
	case console.FormatXLSX:
		if out == "" {
			out = console.ExportFilename(time.Now(), format)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, db, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	c := console.New(console.NewPostgresExecutor(db.Pool()), cfg.SQLStatementTimeout)
	res, err := c.Run(cmd.Context(), strings.TrimSpace(args[0]))
	if err != nil {
		if errors.Is(err, console.ErrQueryFailed) {
			return fmt.Errorf("query failed after %dms: %s", res.ExecutionTime, res.Error)
		}
		return err
	}

	w := cmd.OutOrStdout()
	if out != "" {
		f, cerr := os.Create(out)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", out, cerr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	if format == console.FormatXLSX {
		err = console.WriteXLSX(w, res)
	} else {
		err = console.WriteJSON(w, res)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d row(s) in %dms\n", res.RowCount, res.ExecutionTime)
	return nil
}
