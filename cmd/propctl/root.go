package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/config"
	"github.com/joshuapare/propkit/propstore"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	cfgFile  string
	propFile string
	propType string

	// Set up by setup() before any command runs.
	cfg    *config.Config
	logger *logrus.Logger
)

// errDetected makes the process exit non-zero after a command has already
// reported a tamper or detection result.
var errDetected = errors.New("integrity check failed")

var rootCmd = &cobra.Command{
	Use:   "propctl",
	Short: "Inspect Android build property areas and check device integrity",
	Long: `propctl parses the binary build property area published under
/dev/__properties__, reports its ro.* properties, checks them for tampering
and runs hook and root detection checks.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&propFile, "file", "f", "", "Property file to read (overrides --type)")
	rootCmd.PersistentFlags().StringVar(&propType, "type", "", "Property area: build, system, default, vendor")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDetected) {
			printError("%v\n", err)
		}
		os.Exit(1)
	}
}

// setup loads configuration and applies the global flag overrides.
func setup() error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if propFile != "" {
		c.Property.Path = propFile
	}
	if propType != "" {
		c.Property.Type = propType
	}
	switch {
	case verbose:
		c.Log.Level = "debug"
	case quiet:
		c.Log.Level = "error"
	}
	cfg = c
	logger = config.InitLogger(&cfg.Log)
	return nil
}

// propertyOptions returns parser options for the configured area.
func propertyOptions() propstore.Options {
	return cfg.PropertyOptions(logger)
}

// openStore parses the configured property area.
func openStore() (*propstore.Store, error) {
	opts := propertyOptions()
	printVerbose("Opening property area: %s (%s)\n", opts.Path, opts.Type)
	return propstore.Open("", opts)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
