package main

import (
	"errors"
	"fmt"
	"os"

	"devscout/pkg/config"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage DevScout configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (DEVSCOUT_*)
  - Configuration file
  - Default values (lowest priority)`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Long: `Write every option with its default value to devscout.yaml, or to the
path given with --config.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load the configuration from every source and check it for invalid values.
All problems are reported at once.`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = "devscout.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file %s already exists, remove it first to start over", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration file created: " + path)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Set replies.username to your Reddit username")
	fmt.Println("2. Point backend.base_url at your DevScout backend")
	fmt.Println("3. Run 'devscout config validate' to check the configuration")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configFile, commandLineFlags(cmd))
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(loaded)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println()
	ui.PrintHighlight("Configuration Sources")
	if configFile != "" {
		fmt.Printf("  Config file: %s\n", configFile)
	} else {
		for _, loc := range config.DefaultLocations() {
			if _, err := os.Stat(loc); err == nil {
				fmt.Printf("  Config file: %s\n", loc)
				break
			}
		}
	}
	for _, key := range []string{"DEVSCOUT_USERNAME", "DEVSCOUT_BACKEND_URL", "DEVSCOUT_OUTPUT_DIR", "DEVSCOUT_LOG_LEVEL"} {
		if os.Getenv(key) != "" {
			fmt.Printf("  Environment: %s\n", key)
		}
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(configFile, commandLineFlags(cmd)); err != nil {
		return err
	}
	ui.PrintSuccess("Configuration is valid")
	return nil
}
