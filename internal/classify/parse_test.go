package classify

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		classification string
		explanation    string
		ok             bool
	}{
		{
			"well formed",
			"Classification: Factual\nExplanation: Confirmed by multiple outlets.",
			"Factual",
			"Confirmed by multiple outlets.",
			true,
		},
		{
			"extra whitespace",
			"Classification:   Unclear / Ambiguous  \nExplanation:   The evidence is mixed.  ",
			"Unclear / Ambiguous",
			"The evidence is mixed.",
			true,
		},
		{
			"repeated explanation marker keeps first segment",
			"Classification: Factual\nExplanation: First reason.\nExplanation: Second reason.",
			"Factual",
			"First reason.",
			true,
		},
		{
			"no markers",
			"I'm not sure.",
			VerdictUnknown,
			DefaultExplanation,
			false,
		},
		{
			"missing explanation",
			"Classification: Factual",
			VerdictUnknown,
			DefaultExplanation,
			false,
		},
		{
			"missing classification",
			"Explanation: Because reasons.",
			VerdictUnknown,
			DefaultExplanation,
			false,
		},
		{
			"gpt error sentinel",
			GPTErrorMessage(errors.New("rate limit exceeded")),
			VerdictUnknown,
			DefaultExplanation,
			false,
		},
		{
			"label not in canonical set passes through verbatim",
			"Classification: Mostly True\nExplanation: Partially supported.",
			"Mostly True",
			"Partially supported.",
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			classification, explanation, ok := Parse(tc.raw)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v got %v", tc.ok, ok)
			}
			if classification != tc.classification {
				t.Fatalf("expected classification %q got %q", tc.classification, classification)
			}
			if explanation != tc.explanation {
				t.Fatalf("expected explanation %q got %q", tc.explanation, explanation)
			}
		})
	}
}
