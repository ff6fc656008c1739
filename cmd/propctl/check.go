package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check critical build properties for tampering",
		Long: `The check command verifies that every critical build property is present,
non-empty and not "unknown". A property area that cannot be parsed counts as
tampered. The exit status is 1 when tampering is detected.

Example:
  propctl check
  propctl check --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

type checkResult struct {
	Path        string `json:"path"`
	Tampered    bool   `json:"tampered"`
	Strategy    string `json:"strategy"`
	Fingerprint string `json:"fingerprint"`
	Error       string `json:"error,omitempty"`
	Findings    any    `json:"findings"`
}

func runCheck(args []string) error {
	s, err := openStore()
	findings := s.TamperFindings()
	res := checkResult{
		Path:        s.Path(),
		Tampered:    s.CheckForTampering(),
		Strategy:    s.Strategy().String(),
		Fingerprint: s.Fingerprint(),
		Findings:    findings,
	}
	if err != nil {
		res.Error = err.Error()
	}

	if jsonOut {
		if perr := printJSON(res); perr != nil {
			return perr
		}
	} else {
		if err != nil {
			printInfo("Parse failed: %v\n", err)
		}
		for _, f := range findings {
			printInfo("  ✗ %s: %s\n", f.Key, f.Reason)
		}
		if res.Tampered {
			printInfo("Tampering detected (%d of %d critical properties failed)\n", len(findings), len(criticalKeys()))
		} else {
			printInfo("  ✓ All critical properties present (strategy: %s)\n", res.Strategy)
		}
	}
	if res.Tampered {
		return errDetected
	}
	return nil
}
