package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/propstore/printer"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single property value",
		Long: `The get command prints the value of one ro.* property.

Example:
  propctl get ro.build.fingerprint
  propctl get ro.product.model --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	key := args[0]
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to parse property area: %w", err)
	}

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	if err := printer.New(s, os.Stdout, opts).PrintKey(key); err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}
	return nil
}
