package mermaid

import (
	"context"
	"fmt"

	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/prompt"
)

// Result carries both stages of diagram processing.
//
// Enhanced is the raw output of the insertion call, before any repair.
// Final is the repaired, normalized document. Both are returned so a caller
// can diff them or fall back to Enhanced if repair degraded the content;
// the asymmetry is deliberate.
type Result struct {
	Enhanced     string
	Final        string
	Report       Report
	Unterminated []Block
	Usage        llm.Usage
}

// Processor runs the diagram enhancement pipeline: one generation call to
// insert diagrams, one to validate and repair them, with deterministic fence
// normalization after each call and a structural validation pass at the end.
type Processor struct {
	gen  llm.Generator
	norm *Normalizer
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithNormalizer sets a custom normalizer (look-back window, strictness).
func WithNormalizer(n *Normalizer) ProcessorOption {
	return func(p *Processor) {
		if n != nil {
			p.norm = n
		}
	}
}

// NewProcessor creates a Processor using the given generator.
func NewProcessor(gen llm.Generator, opts ...ProcessorOption) *Processor {
	p := &Processor{
		gen:  gen,
		norm: NewNormalizer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process enhances slide content with mermaid diagrams.
//
// The two external calls run strictly in sequence; a failure in either
// propagates unchanged and no partial content is substituted. Structural
// violations in the final document are findings in Result.Report, never an
// error: repair is best-effort and the caller decides what to do with them.
func (p *Processor) Process(ctx context.Context, slideContent string) (Result, error) {
	// 1. Ask the model to insert diagrams.
	enhanced, genUsage, err := p.gen.Generate(ctx, llm.Request{
		System: prompt.DiagramSystem(),
		User:   prompt.DiagramUser(slideContent),
	})
	if err != nil {
		return Result{}, fmt.Errorf("diagram generation: %w", err)
	}

	// 2. Deterministic cleanup before the repair call, so the model sees
	// well-formed fences and can focus on diagram syntax.
	cleaned, _ := p.norm.Normalize(enhanced)

	// 3. Ask the model to validate and fix diagram syntax.
	repaired, repairUsage, err := p.gen.Generate(ctx, llm.Request{
		System: prompt.RepairSystem(),
		User:   prompt.RepairUser(cleaned),
	})
	if err != nil {
		return Result{}, fmt.Errorf("diagram validation: %w", err)
	}

	// 4. The repair call may itself reintroduce fence artifacts.
	final, unterminated := p.norm.Normalize(repaired)

	// 5. Structural check of the finished document.
	report := Validate(final)

	return Result{
		Enhanced:     enhanced,
		Final:        final,
		Report:       report,
		Unterminated: unterminated,
		Usage:        genUsage.Add(repairUsage),
	}, nil
}
