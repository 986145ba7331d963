package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"seqapi/internal/api"
	"seqapi/internal/sequence"
)

var generateFormat string

var generateCmd = &cobra.Command{
	Use:   "generate <sequence> <n>",
	Short: "Print the first n terms of a sequence",
	Long: `Generate the first n terms of a sequence locally, applying the same
validation as the HTTP endpoints.

Examples:
  seqapi generate fibonacci 10
  seqapi generate pell 5 --format json`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: sequence.Names(),
	RunE:      runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rec, ok := sequence.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown sequence %q (available: %v)", args[0], sequence.Names())
	}

	result, err := loadConfig()
	if err != nil {
		return err
	}

	count, err := api.ValidateCount(args[1], result.Config.Limits.MaxCount)
	if err != nil {
		return err
	}

	seq := rec.Generate(count)
	resp := &GenerateResponseCLI{
		Name:             rec.Name,
		SequenceResponse: api.SequenceResponse{Sequence: seq, Length: len(seq)},
	}

	out, err := FormatResponse(resp, OutputFormat(generateFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
