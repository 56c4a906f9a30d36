// Package llm wraps the external text-generation service behind a small
// Generator interface. The pipeline treats generation as an opaque capability:
// a (system, user) prompt pair in, a text response plus token usage out.
package llm

import "context"

// Usage records the generation capacity consumed by one or more API calls.
// All counts are non-negative.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Add returns the sum of two usage records.
// Usage accumulates across sequential pipeline stages by simple addition.
func (u Usage) Add(v Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + v.PromptTokens,
		CompletionTokens: u.CompletionTokens + v.CompletionTokens,
		TotalTokens:      u.TotalTokens + v.TotalTokens,
	}
}

// Request describes a single text-generation call.
// Zero Model and MaxTokens fall back to the generator's configured defaults.
type Request struct {
	System    string
	User      string
	Model     string
	MaxTokens int
}

// Generator produces a text response for a system/user prompt pair.
//
// Implementations own the retry and timeout policy; the pipeline core only
// propagates failures and never fabricates placeholder content.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, Usage, error)
}
