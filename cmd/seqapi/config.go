package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqapi/internal/config"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect seqapi configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after applying the config file, environment
variables and flags.

Examples:
  seqapi config show                 # TOML
  seqapi config show --format yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, v := range config.SupportedEnvVars() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", v.Var, v.Key)
		}
	},
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format (toml, yaml, json)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	result, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.ConfigPath != "" {
		fmt.Fprintf(out, "# config file: %s\n", result.ConfigPath)
	}
	for _, o := range result.EnvOverrides {
		fmt.Fprintf(out, "# %s=%q overrides %s\n", o.Var, o.Value, o.Key)
	}
	return result.Config.Encode(out, configFormat)
}
