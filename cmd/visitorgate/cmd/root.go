package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile        string
	logLevel       string
	logFormat      string
	rowLimit       int
	timeoutSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "visitorgate",
	Short: "Visitor registration and report tool for a Frappe site",
	Long: `visitorgate works on the visitor records of a Frappe site database.

Features:
  - Derived form fields (age, gender, visit duration, identity numbers)
  - Visitor reports with data source discovery and status badges
  - Security status dashboard counts
  - Gate pass validity checks`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "visitorgate.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Query overrides
	rootCmd.PersistentFlags().IntVar(&rowLimit, "row-limit", 0,
		"Override report row limit (at most 1000)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0,
		"Override site query timeout in seconds")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel       string
	LogFormat      string
	RowLimit       int
	TimeoutSeconds int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:       logLevel,
		LogFormat:      logFormat,
		RowLimit:       rowLimit,
		TimeoutSeconds: timeoutSeconds,
	}
}
