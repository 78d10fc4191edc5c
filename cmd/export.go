package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glowlab/retention-cli/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the full analysis and write it to an XLSX workbook or JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		eng, _, err := newEngine(ctx)
		if err != nil {
			return err
		}
		rep, err := eng.Report(ctx)
		if err != nil {
			return err
		}

		switch filepath.Ext(exportOut) {
		case ".xlsx":
			if err := report.WriteXLSX(exportOut, rep); err != nil {
				return err
			}
		case ".json":
			data, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return eris.Wrap(err, "marshal report")
			}
			if err := os.WriteFile(exportOut, data, 0o644); err != nil {
				return eris.Wrapf(err, "write %s", exportOut)
			}
		default:
			return eris.Errorf("unsupported output extension %q (want .xlsx or .json)", filepath.Ext(exportOut))
		}

		zap.L().Info("report exported", zap.String("path", exportOut))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "report.xlsx", "output path (.xlsx or .json)")
	rootCmd.AddCommand(exportCmd)
}
