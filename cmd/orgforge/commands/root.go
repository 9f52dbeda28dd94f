package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Target flags, with environment fallbacks
	instanceURL string
	accessToken string

	// Browser flags
	headless bool
	slowMo   time.Duration

	// Run history
	historyPath string

	// Telemetry flags
	traceEnabled   bool
	traceExporter  string
	traceEndpoint  string
	metricsEnabled bool
	metricsAddr    string
	verbose        bool
)

// Environment fallbacks for the target flags.
const (
	envInstanceURL = "ORGFORGE_INSTANCE_URL"
	envAccessToken = "ORGFORGE_ACCESS_TOKEN"
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orgforge",
		Short: "OrgForge - Org Configuration Automation Engine",
		Long: `OrgForge drives administrative Setup surfaces of a pre-authenticated org
through a browser session and applies declarative configuration batches.

Features:
  - Front-door session injection (no credential acquisition)
  - Declarative YAML batch documents
  - Fixed, deterministic category execution order
  - Abort-on-first-failure or continue-and-collect failure policies
  - Persisted run history (no credential material is stored)`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&instanceURL, "instance-url", "",
		"target org base URL (or "+envInstanceURL+")")
	rootCmd.PersistentFlags().StringVar(&accessToken, "access-token", "",
		"pre-obtained session token (or "+envAccessToken+")")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", true, "run the browser without a window")
	rootCmd.PersistentFlags().DurationVar(&slowMo, "slow-mo", 0, "delay before every browser action")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history-db", "orgforge.db",
		"run history database path (empty disables history)")
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "enable tracing")
	rootCmd.PersistentFlags().StringVar(&traceExporter, "trace-exporter", "stdout", "trace exporter (otlp, stdout, none)")
	rootCmd.PersistentFlags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP trace endpoint (host:port)")
	rootCmd.PersistentFlags().BoolVar(&metricsEnabled, "metrics", false, "expose Prometheus metrics for the run")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", ":9090", "metrics listen address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}
