package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/dataset"
	"github.com/glowlab/retention-cli/internal/db"
)

var (
	importDatabaseURL string
	importTable       string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load the local event table into Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		connString := importDatabaseURL
		if connString == "" {
			connString = cfg.Data.DatabaseURL
		}
		if connString == "" {
			return eris.New("import: no database URL (--database-url or data.database_url)")
		}

		table, err := dataset.Load(ctx, cfg.Data)
		if err != nil {
			return err
		}

		pool, err := pgxpool.New(ctx, connString)
		if err != nil {
			return eris.Wrap(err, "import: connect postgres")
		}
		defer pool.Close()

		if err := db.EnsureEventsTable(ctx, pool, importTable); err != nil {
			return err
		}
		n, err := db.ImportEvents(ctx, pool, importTable, table)
		if err != nil {
			return err
		}

		zap.L().Info("events imported",
			zap.String("table", importTable),
			zap.Int64("rows", n),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importDatabaseURL, "database-url", "", "postgres DSN (default from config)")
	importCmd.Flags().StringVar(&importTable, "table", "events", "target table name")
	rootCmd.AddCommand(importCmd)
}
