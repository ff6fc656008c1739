package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/propstore/printer"
)

var (
	dumpFormat      string
	dumpPrefix      string
	dumpEntries     bool
	dumpDiagnostics bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpFormat, "format", "text", "Output format: text, json, prop")
	cmd.Flags().StringVar(&dumpPrefix, "prefix", "", "Only print keys with this prefix")
	cmd.Flags().BoolVar(&dumpEntries, "entries", false, "Include offset and size of each entry")
	cmd.Flags().BoolVar(&dumpDiagnostics, "diagnostics", false, "Print parser diagnostics to stderr")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every ro.* property",
		Long: `The dump command parses the property area and prints every recovered
ro.* property.

Example:
  propctl dump
  propctl dump --format prop > build.prop
  propctl dump -f ./props.bin --prefix ro.product. --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	if dumpDiagnostics {
		cfg.Property.Diagnostics = true
	}
	s, err := openStore()
	if dumpDiagnostics {
		for _, d := range s.Diagnostics() {
			fmt.Fprintln(os.Stderr, d.String())
		}
	}
	if err != nil {
		return fmt.Errorf("failed to parse property area: %w", err)
	}
	printVerbose("Strategy: %s, %d properties\n", s.Strategy(), s.Len())

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	} else {
		f, err := printer.ParseFormat(dumpFormat)
		if err != nil {
			return err
		}
		opts.Format = f
	}
	opts.Prefix = dumpPrefix
	opts.ShowEntries = dumpEntries
	return printer.Print(os.Stdout, s, opts)
}
