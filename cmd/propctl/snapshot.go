package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/baseline"
)

var snapshotLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and verify property baselines",
		Long: `The snapshot commands record the current property area in the baseline
database and compare later parses against it. The database is SQLite by
default; set baseline.type=mysql in the config file to use MySQL.`,
	}
	cmd.AddCommand(newSnapshotSaveCmd(), newSnapshotVerifyCmd(), newSnapshotListCmd())
	rootCmd.AddCommand(cmd)
}

func newSnapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Record the current properties as a baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotSave(context.Background())
		},
	}
}

func newSnapshotVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare the current properties with the latest baseline",
		Long: `The verify command compares every baseline property with the live value.
The exit status is 1 when any recorded property changed or disappeared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotVerify(context.Background())
		},
	}
}

func newSnapshotListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded baselines, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotList(context.Background())
		},
	}
	cmd.Flags().IntVar(&snapshotLimit, "limit", 20, "Maximum number of snapshots (0 = all)")
	return cmd
}

func openRepository() (baseline.Repository, error) {
	db, err := baseline.OpenDB(&cfg.Baseline, logger)
	if err != nil {
		return nil, err
	}
	return baseline.NewRepository(db, logger), nil
}

func runSnapshotSave(ctx context.Context) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to parse property area: %w", err)
	}
	repo, err := openRepository()
	if err != nil {
		return err
	}
	snap, err := repo.Save(ctx, s.Path(), s)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(snap)
	}
	printInfo("Saved snapshot %s (%d properties, fingerprint %s)\n", snap.ID, snap.PropertyCount, snap.Fingerprint)
	return nil
}

func runSnapshotVerify(ctx context.Context) error {
	s, err := openStore()
	if err != nil {
		printVerbose("Parse failed: %v\n", err)
	}
	repo, err := openRepository()
	if err != nil {
		return err
	}
	snap, err := repo.Latest(ctx, s.Path())
	if err != nil {
		return err
	}
	rep := baseline.Compare(snap, s)

	if jsonOut {
		if err := printJSON(rep); err != nil {
			return err
		}
	} else {
		printInfo("Baseline %s captured %s\n", snap.ID, snap.CapturedAt.Format("2006-01-02 15:04:05"))
		if rep.FingerprintChanged {
			printInfo("  Fingerprint: %s -> %s\n", snap.Fingerprint, s.Fingerprint())
		}
		for _, d := range rep.Changed {
			if d.Missing {
				printInfo("  ✗ %s: removed (was %q)\n", d.Key, d.Baseline)
			} else {
				printInfo("  ✗ %s: %q -> %q\n", d.Key, d.Baseline, d.Current)
			}
		}
		for _, k := range rep.Added {
			printInfo("  + %s\n", k)
		}
		if !rep.Tampered() {
			printInfo("  ✓ Matches baseline\n")
		}
	}
	if rep.Tampered() {
		return errDetected
	}
	return nil
}

func runSnapshotList(ctx context.Context) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	snaps, err := repo.List(ctx, snapshotLimit)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(snaps)
	}
	for _, s := range snaps {
		printInfo("%s  %s  %s  %3d  %s\n", s.ID, s.CapturedAt.Format("2006-01-02 15:04:05"), s.Fingerprint, s.PropertyCount, s.Path)
	}
	return nil
}
