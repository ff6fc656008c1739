package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/propstore"
)

func init() {
	rootCmd.AddCommand(newHashCmd())
}

func newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the fingerprint of the property file",
		Long: `The hash command prints a 64-bit xxHash of the raw property file as 16
hex digits. It is meant for change detection, not for security.

The fingerprint is printed even when no properties could be parsed.

Example:
  propctl hash
  propctl hash -f ./props.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(args)
		},
	}
	return cmd
}

func runHash(args []string) error {
	s, err := openStore()
	if err != nil && !errors.Is(err, propstore.ErrNoProperties) {
		return fmt.Errorf("failed to read property area: %w", err)
	}
	if jsonOut {
		return printJSON(map[string]any{
			"path":        s.Path(),
			"fingerprint": s.Fingerprint(),
			"size":        s.Size(),
		})
	}
	fmt.Println(s.Fingerprint())
	return nil
}
