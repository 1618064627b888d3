package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"devscout/pkg/config"
	"devscout/pkg/logger"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "0.4.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile      string
	logLevel        string
	noColor         bool
	notifications   bool
	quiet           bool
	verbose         bool
	outputDir       string
	backendURL      string
	metricsTextfile string
	requestsPerMin  int
	sourceDelay     time.Duration

	// cfg is loaded once per invocation by the root pre-run hook
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devscout",
	Short: "Find developer discussions, leads and issues worth answering",
	Long: `DevScout scans developer communities for posts worth responding to.

It fetches from Reddit, Hacker News, Lobsters, Dev.to, Hashnode, Indie Hackers,
Tildes and GitHub, scores every item by keywords and recency, removes
duplicates and ranks what is left. Long scans checkpoint after every source
and can be resumed after an interruption.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (DEVSCOUT_*, also read from .env)
  - Configuration file (devscout.yaml)
  - Default values (lowest priority)`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.SetNoColor(noColor)
		if quiet {
			ui.SetQuietMode(true)
		}

		// config subcommands manage the file themselves
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}

		loaded, err := config.Load(configFile, commandLineFlags(cmd))
		if err != nil {
			return err
		}
		cfg = loaded

		if err := logger.Initialize(&cfg.Logging); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.WithFields(map[string]interface{}{
			"version": version,
			"command": cmd.Name(),
		}).Debug("DevScout starting")

		if verbose && cmd.Name() != "ideas" {
			ui.PrintLogo()
		}
		return nil
	},
}

// commandLineFlags collects the flags that were set explicitly so that
// they override file and environment values
func commandLineFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		flags["log-level"] = logLevel
	} else if verbose {
		flags["log-level"] = "debug"
	} else if quiet {
		flags["log-level"] = "error"
	}
	if changed("output") {
		flags["output"] = outputDir
	}
	if changed("backend-url") {
		flags["backend-url"] = backendURL
	}
	if changed("metrics-textfile") {
		flags["metrics-textfile"] = metricsTextfile
	}
	if changed("rate-limit") {
		flags["requests-per-minute"] = requestsPerMin
	}
	if changed("delay") {
		flags["delay"] = sourceDelay
	}
	if changed("username") {
		flags["username"] = replyUsername
	}
	return flags
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./devscout.yaml or ~/.config/devscout/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notifications", false, "send a desktop notification when a scan finishes")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "print only results and errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show the logo and debug logs")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory for exports and reports")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "DevScout backend base URL")
	rootCmd.PersistentFlags().IntVar(&requestsPerMin, "rate-limit", 60, "outbound requests per minute")
	rootCmd.PersistentFlags().DurationVar(&sourceDelay, "delay", 0, "pause between sources (overrides scan.source_delay and scan.prospect_delay)")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after a run")

	rootCmd.SetVersionTemplate(`DevScout {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
