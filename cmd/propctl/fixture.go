package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/format"
	"github.com/joshuapare/propkit/internal/writer"
)

var fixtureLead int

func init() {
	cmd := newFixtureCmd()
	cmd.Flags().IntVar(&fixtureLead, "lead", 0, "Filler bytes before the PROP signature")
	rootCmd.AddCommand(cmd)
}

func newFixtureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture <out> <key=value>...",
		Short: "Write a synthetic property area image",
		Long: `The fixture command writes a property area image holding the given
properties, for exercising the other commands off-device. The file is
replaced atomically, so a running "propctl watch" sees one change.

Example:
  propctl fixture props.bin ro.product.model=Pixel7 ro.build.tags=release-keys
  propctl dump -f props.bin`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixture(args)
		},
	}
	return cmd
}

func runFixture(args []string) error {
	out := args[0]
	b := format.NewBuilder()
	b.Lead = fixtureLead
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid property %q (want key=value)", kv)
		}
		b.Add(key, value)
	}
	data := b.Build()
	w := &writer.FileWriter{Path: out}
	if err := w.WriteImage(data); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	printVerbose("Wrote %d bytes to %s\n", len(data), out)
	return nil
}
