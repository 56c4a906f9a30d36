package mermaid_test

import (
	"strings"
	"testing"

	"github.com/alnah/go-deckgen/internal/mermaid"
)

// ---------------------------------------------------------------------------
// TestValidate - Notes structure
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mermaid.Violation
	}{
		{
			name: "well-formed notes pass",
			content: joinLines(
				"## Slide 1",
				"::: notes",
				"a note",
				":::",
				"---",
				"## Slide 2",
				"::: notes",
				"another",
				":::",
			),
			want: nil,
		},
		{
			name:    "no notes at all pass",
			content: joinLines("## Slide 1", "text", "---", "## Slide 2"),
			want:    nil,
		},
		{
			name:    "close without open",
			content: joinLines("## Slide 1", ":::", "text"),
			want: []mermaid.Violation{
				{Slide: 1, Line: 2, Message: "closing ::: without a matching open"},
			},
		},
		{
			name:    "double open",
			content: joinLines("::: notes", "a", "::: notes", "b", ":::"),
			want: []mermaid.Violation{
				{Slide: 1, Line: 3, Message: "notes section already open"},
			},
		},
		{
			name: "open across slide separator",
			content: joinLines(
				"## Slide 1",
				"::: notes",
				"a note",
				"---",
				"## Slide 2",
			),
			want: []mermaid.Violation{
				{Slide: 1, Line: 4, Message: "notes section not closed before slide separator"},
			},
		},
		{
			name:    "open at end of document",
			content: joinLines("## Slide 1", "::: notes", "dangling"),
			want: []mermaid.Violation{
				{Slide: 1, Line: 3, Message: "notes section not closed at end of document"},
			},
		},
		{
			name: "violations attributed to the right slide",
			content: joinLines(
				"## Slide 1",
				"---",
				"## Slide 2",
				"---",
				"## Slide 3",
				":::",
			),
			want: []mermaid.Violation{
				{Slide: 3, Line: 6, Message: "closing ::: without a matching open"},
			},
		},
		{
			name: "separator resets state so later notes are clean",
			content: joinLines(
				"::: notes",
				"left open",
				"---",
				"::: notes",
				"fine",
				":::",
			),
			want: []mermaid.Violation{
				{Slide: 1, Line: 3, Message: "notes section not closed before slide separator"},
			},
		},
		{
			name: "multiple findings in line order",
			content: joinLines(
				":::",
				"::: notes",
				"a",
				"::: notes",
				"b",
				"---",
			),
			want: []mermaid.Violation{
				{Slide: 1, Line: 1, Message: "closing ::: without a matching open"},
				{Slide: 1, Line: 4, Message: "notes section already open"},
				{Slide: 1, Line: 6, Message: "notes section not closed before slide separator"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := mermaid.Validate(tt.content)

			if report.Valid() != (len(tt.want) == 0) {
				t.Errorf("Valid() = %v, want %v", report.Valid(), len(tt.want) == 0)
			}
			if len(report.Violations) != len(tt.want) {
				t.Fatalf("got %d violations %v, want %d", len(report.Violations), report.Violations, len(tt.want))
			}
			for i, v := range report.Violations {
				if v != tt.want[i] {
					t.Errorf("violation[%d] = %+v, want %+v", i, v, tt.want[i])
				}
			}
		})
	}
}

func TestViolationString(t *testing.T) {
	t.Parallel()

	v := mermaid.Violation{Slide: 3, Line: 42, Message: "notes section already open"}
	want := "slide 3, line 42: notes section already open"
	if got := v.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeThenValidate - Pipeline interaction
// ---------------------------------------------------------------------------

func TestNormalizeThenValidate(t *testing.T) {
	t.Parallel()

	// Repairing fences must not disturb notes structure: a document whose
	// notes were well-formed stays valid through normalization.
	content := joinLines(
		"## Slide 1",
		"````mermaid",
		"flowchart LR",
		"A --> B",
		"```",
		"```",
		"::: notes",
		"speaker note",
		":::",
		"---",
		"## Slide 2",
	)

	cleaned, unterminated := mermaid.Normalize(content)
	if len(unterminated) != 0 {
		t.Fatalf("got %d unterminated blocks, want 0", len(unterminated))
	}
	if !strings.Contains(cleaned, joinLines("```mermaid", "flowchart LR", "A --> B", "```")) {
		t.Errorf("diagram block not repaired:\n%q", cleaned)
	}

	report := mermaid.Validate(cleaned)
	if !report.Valid() {
		t.Errorf("validation failed after normalize: %v", report.Violations)
	}
}
