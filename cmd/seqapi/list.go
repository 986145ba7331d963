package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqapi/internal/sequence"
)

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available sequences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := FormatResponse(sequence.All(), OutputFormat(listFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(listCmd)
}
