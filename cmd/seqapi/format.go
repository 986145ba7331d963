package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"seqapi/internal/api"
	"seqapi/internal/sequence"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", outputFormatError(string(format), string(FormatJSON), string(FormatHuman), string(FormatYAML))
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(resp); err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *GenerateResponseCLI:
		return formatGenerateHuman(v), nil
	case []sequence.Recurrence:
		return formatListHuman(v), nil
	default:
		return formatJSON(resp)
	}
}

func formatGenerateHuman(resp *GenerateResponseCLI) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d terms)\n", resp.Name, resp.Length)
	if resp.Length == 0 {
		b.WriteString("  (empty)")
		return b.String()
	}
	terms := make([]string, len(resp.Sequence))
	for i, v := range resp.Sequence {
		terms[i] = fmt.Sprintf("%d", v)
	}
	b.WriteString("  " + strings.Join(terms, ", "))
	return b.String()
}

func formatListHuman(recs []sequence.Recurrence) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-11s %s\n", r.Name, r.Description)
		fmt.Fprintf(&b, "            %s (order %d)", r.Formula(), r.Order())
	}
	return b.String()
}

// GenerateResponseCLI is the output of the generate command. It embeds the
// same body the HTTP endpoints return.
type GenerateResponseCLI struct {
	Name                 string `json:"name" yaml:"name"`
	api.SequenceResponse `yaml:",inline"`
}
