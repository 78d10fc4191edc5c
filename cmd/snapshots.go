package main

import (
	"github.com/spf13/cobra"

	"github.com/glowlab/retention-cli/internal/store"
)

var snapshotsLimit int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage persisted analysis snapshots",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		snaps, err := s.ListSnapshots(ctx, snapshotsLimit)
		if err != nil {
			return err
		}
		return printJSON(snaps)
	},
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a snapshot's report (latest when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()

		var snap *store.Snapshot
		if len(args) == 1 {
			snap, err = s.GetSnapshot(ctx, args[0])
		} else {
			snap, err = s.LatestSnapshot(ctx)
		}
		if err != nil {
			return err
		}

		report, err := snap.DecodeReport()
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.DeleteSnapshot(ctx, args[0])
	},
}

func init() {
	snapshotsListCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum snapshots to list (0 = all)")
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd, snapshotsDeleteCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
