package main

import (
	"strings"
	"testing"

	"seqapi/internal/api"
	"seqapi/internal/sequence"
)

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	if _, err := FormatResponse(struct{}{}, OutputFormat("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFormatGenerateHuman(t *testing.T) {
	tests := []struct {
		name string
		resp *GenerateResponseCLI
		want string
	}{
		{
			name: "terms",
			resp: &GenerateResponseCLI{Name: "lucas", SequenceResponse: api.SequenceResponse{Sequence: []int64{2, 1, 3}, Length: 3}},
			want: "lucas (3 terms)\n  2, 1, 3",
		},
		{
			name: "empty",
			resp: &GenerateResponseCLI{Name: "pell", SequenceResponse: api.SequenceResponse{Sequence: []int64{}, Length: 0}},
			want: "pell (0 terms)\n  (empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatResponse(tt.resp, FormatHuman)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHuman_UnknownTypeFallsBackToJSON(t *testing.T) {
	resp := struct {
		Foo string `json:"foo"`
	}{Foo: "bar"}

	result, err := formatHuman(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"foo": "bar"`) {
		t.Errorf("missing JSON content: %s", result)
	}
}

func TestFormatYAML_Recurrences(t *testing.T) {
	out, err := formatYAML(sequence.All()[:1])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"name: fibonacci", "coefficients:", "initial:"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}
