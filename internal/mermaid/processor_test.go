package mermaid_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/mermaid"
)

// fakeGenerator scripts one response per call, in order.
type fakeGenerator struct {
	responses []string
	usages    []llm.Usage
	errs      []error
	requests  []llm.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (string, llm.Usage, error) {
	call := len(f.requests)
	f.requests = append(f.requests, req)

	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	if err != nil {
		return "", llm.Usage{}, err
	}

	var usage llm.Usage
	if call < len(f.usages) {
		usage = f.usages[call]
	}
	return f.responses[call], usage, nil
}

// ---------------------------------------------------------------------------
// TestProcessorProcess - Diagram pipeline
// ---------------------------------------------------------------------------

func TestProcessorProcess(t *testing.T) {
	t.Parallel()

	t.Run("happy path repairs both stages", func(t *testing.T) {
		t.Parallel()

		enhanced := joinLines("## Slide", "````mermaid", "pie", "```", "```", "text")
		repaired := joinLines("## Slide", "```mermaid```", "pie", "```", "text")

		gen := &fakeGenerator{
			responses: []string{enhanced, repaired},
			usages: []llm.Usage{
				{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
				{PromptTokens: 70, CompletionTokens: 30, TotalTokens: 100},
			},
		}
		p := mermaid.NewProcessor(gen)

		res, err := p.Process(context.Background(), "## Slide\ntext")
		if err != nil {
			t.Fatalf("Process() error: %v", err)
		}

		if res.Enhanced != enhanced {
			t.Errorf("Enhanced = %q, want the raw first response %q", res.Enhanced, enhanced)
		}
		wantFinal := joinLines("## Slide", "```mermaid", "pie", "```", "text")
		if res.Final != wantFinal {
			t.Errorf("Final = %q, want %q", res.Final, wantFinal)
		}
		if !res.Report.Valid() {
			t.Errorf("unexpected violations: %v", res.Report.Violations)
		}
		if len(res.Unterminated) != 0 {
			t.Errorf("got %d unterminated blocks, want 0", len(res.Unterminated))
		}
		if res.Usage.TotalTokens != 250 {
			t.Errorf("Usage.TotalTokens = %d, want 250", res.Usage.TotalTokens)
		}
	})

	t.Run("repair call sees normalized content", func(t *testing.T) {
		t.Parallel()

		enhanced := joinLines("````mermaid", "pie", "```", "```")
		gen := &fakeGenerator{responses: []string{enhanced, enhanced}}
		p := mermaid.NewProcessor(gen)

		if _, err := p.Process(context.Background(), "content"); err != nil {
			t.Fatalf("Process() error: %v", err)
		}

		if len(gen.requests) != 2 {
			t.Fatalf("got %d generator calls, want 2", len(gen.requests))
		}
		second := gen.requests[1].User
		if !strings.Contains(second, joinLines("```mermaid", "pie", "```")) {
			t.Errorf("repair prompt carries unnormalized fences:\n%q", second)
		}
		if strings.Contains(second, "````mermaid") {
			t.Errorf("duplicated opener leaked into repair prompt:\n%q", second)
		}
	})

	t.Run("violations reported not fatal", func(t *testing.T) {
		t.Parallel()

		broken := joinLines("## Slide", "::: notes", "left open")
		gen := &fakeGenerator{responses: []string{broken, broken}}
		p := mermaid.NewProcessor(gen)

		res, err := p.Process(context.Background(), "content")
		if err != nil {
			t.Fatalf("Process() error: %v", err)
		}
		if res.Report.Valid() {
			t.Error("Report.Valid() = true, want violations for an open notes section")
		}
	})

	t.Run("generation error propagates", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		gen := &fakeGenerator{errs: []error{wantErr}}
		p := mermaid.NewProcessor(gen)

		_, err := p.Process(context.Background(), "content")
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want wrapped %v", err, wantErr)
		}
		if err == nil || !strings.Contains(err.Error(), "diagram generation") {
			t.Errorf("error = %v, want diagram generation context", err)
		}
		if len(gen.requests) != 1 {
			t.Errorf("got %d generator calls, want 1 (no repair after failure)", len(gen.requests))
		}
	})

	t.Run("repair error propagates", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		gen := &fakeGenerator{
			responses: []string{"content with no diagrams", ""},
			errs:      []error{nil, wantErr},
		}
		p := mermaid.NewProcessor(gen)

		_, err := p.Process(context.Background(), "content")
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want wrapped %v", err, wantErr)
		}
		if err == nil || !strings.Contains(err.Error(), "diagram validation") {
			t.Errorf("error = %v, want diagram validation context", err)
		}
	})

	t.Run("custom normalizer honored", func(t *testing.T) {
		t.Parallel()

		// With orphan deletion disabled, a stray closer after a block survives.
		doc := joinLines("```mermaid", "pie", "```", "text", "```")
		gen := &fakeGenerator{responses: []string{doc, doc}}
		p := mermaid.NewProcessor(gen,
			mermaid.WithNormalizer(mermaid.NewNormalizer(mermaid.WithOrphanLookback(-1))))

		res, err := p.Process(context.Background(), "content")
		if err != nil {
			t.Fatalf("Process() error: %v", err)
		}
		if !strings.HasSuffix(res.Final, "\n```") {
			t.Errorf("stray closer deleted despite disabled look-back:\n%q", res.Final)
		}
	})
}
