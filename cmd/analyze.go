package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/store"
)

var (
	analyzeSave   bool
	analyzeSource string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, _, err := newEngine(ctx)
		if err != nil {
			return err
		}

		report, err := eng.Report(ctx)
		if err != nil {
			return err
		}

		if analyzeSave {
			s, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer s.Close()

			source := analyzeSource
			if source == "" {
				source = cfg.Data.Dir
			}
			snap, err := s.SaveSnapshot(ctx, source, report)
			if err != nil {
				return err
			}
			zap.L().Info("snapshot saved", zap.String("id", snap.ID))
		}

		return printJSON(report)
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the report as a snapshot")
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "", "snapshot source label (default data dir)")
	rootCmd.AddCommand(analyzeCmd)
}
