package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/propstore"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show device identity and parse metadata",
		Long: `The info command parses the property area and prints the device identity
(model, brand, Android version, fingerprint) together with the strategy that
recovered the properties.

Example:
  propctl info
  propctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type infoResult struct {
	Path        string               `json:"path"`
	Size        int                  `json:"size"`
	Fingerprint string               `json:"fingerprint"`
	Strategy    string               `json:"strategy"`
	Properties  int                  `json:"properties"`
	Device      propstore.DeviceInfo `json:"device"`
}

func runInfo(args []string) error {
	s, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to parse property area: %w", err)
	}
	res := infoResult{
		Path:        s.Path(),
		Size:        s.Size(),
		Fingerprint: s.Fingerprint(),
		Strategy:    s.Strategy().String(),
		Properties:  s.Len(),
		Device:      s.DeviceInfo(),
	}
	if jsonOut {
		return printJSON(res)
	}

	printInfo("\nProperty Area:\n")
	printInfo("  File: %s\n", res.Path)
	printInfo("  Size: %d bytes\n", res.Size)
	printInfo("  Fingerprint: %s\n", res.Fingerprint)
	printInfo("  Strategy: %s\n", res.Strategy)
	printInfo("  Properties: %d\n", res.Properties)

	printInfo("\nDevice:\n")
	d := res.Device
	for _, row := range [][2]string{
		{"Model", d.Model},
		{"Brand", d.Brand},
		{"Manufacturer", d.Manufacturer},
		{"Device", d.Device},
		{"Hardware", d.Hardware},
		{"Android", d.AndroidVersion},
		{"SDK", d.SDK},
		{"Build ID", d.BuildID},
		{"Fingerprint", d.BuildFingerprint},
	} {
		if row[1] != "" {
			printInfo("  %s: %s\n", row[0], row[1])
		}
	}
	return nil
}

func criticalKeys() []string { return propstore.CriticalKeys }
