package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqapi/internal/version"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFormat == string(FormatHuman) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return nil
		}
		out, err := FormatResponse(version.Current(), OutputFormat(versionFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(versionCmd)
}
