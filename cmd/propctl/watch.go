package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/watch"
)

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report changes to the property file until interrupted",
		Long: `The watch command re-parses the property file whenever it changes and prints
the new fingerprint with the keys that changed.

Example:
  propctl watch -f ./props.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx)
		},
	}
	return cmd
}

func runWatch(ctx context.Context) error {
	opts := propertyOptions()
	path := opts.Path
	if path == "" {
		path = opts.Type.Path()
	}
	w, err := watch.New(path, opts, cfg.WatchDebounce(), logger)
	if err != nil {
		return err
	}
	printInfo("Watching %s (fingerprint %s)\n", path, w.Current().Fingerprint())

	return w.Run(ctx, func(c watch.Change) {
		if jsonOut {
			_ = printJSON(map[string]any{
				"path":        c.Path,
				"previous":    c.Previous,
				"fingerprint": c.Fingerprint,
				"drift":       c.Drift,
				"tampered":    c.Store.CheckForTampering(),
			})
			return
		}
		printInfo("%s -> %s (%d keys changed)\n", c.Previous, c.Fingerprint, len(c.Drift))
		for _, k := range c.Drift {
			printInfo("  ~ %s = %s\n", k, c.Store.Get(k))
		}
	})
}
