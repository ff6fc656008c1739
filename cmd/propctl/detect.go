package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/pkg/detect"
)

var detectCategory string

func init() {
	cmd := newDetectCmd()
	cmd.Flags().StringVar(&detectCategory, "category", "", "Only run checks in this category: hook, root, property")
	rootCmd.AddCommand(cmd)
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run hook, root and property integrity checks",
		Long: `The detect command runs every detection check and prints one line per check.
The exit status is 1 when any check fires.

Example:
  propctl detect
  propctl detect --category hook
  propctl detect --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.Context(), args)
		},
	}
	return cmd
}

func runDetect(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	checks, err := selectChecks(detect.DefaultChecks(cfg.DetectConfig(logger)), detectCategory)
	if err != nil {
		return err
	}
	v := detect.NewAggregator(checks, detect.WithLogger(logger)).Run(ctx)

	if jsonOut {
		if err := printJSON(v); err != nil {
			return err
		}
	} else {
		for _, f := range v.Findings {
			printInfo("  %s\n", f)
		}
		if v.Compromised {
			printInfo("Compromised: %d check(s) fired\n", len(v.Detected()))
		} else {
			printInfo("  ✓ No detections\n")
		}
	}
	if v.Compromised {
		return errDetected
	}
	return nil
}

func selectChecks(all []detect.Check, category string) ([]detect.Check, error) {
	if category == "" {
		return all, nil
	}
	c := detect.Category(category)
	switch c {
	case detect.CategoryHook, detect.CategoryRoot, detect.CategoryProperty:
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
	var out []detect.Check
	for _, ch := range all {
		if ch.Category() == c {
			out = append(out, ch)
		}
	}
	return out, nil
}
