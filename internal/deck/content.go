package deck

import (
	"context"
	"fmt"

	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/prompt"
)

// ContentGenerator expands a slide outline into full markdown slide content.
type ContentGenerator struct {
	gen llm.Generator
}

// NewContentGenerator creates a ContentGenerator using the given generator.
func NewContentGenerator(gen llm.Generator) *ContentGenerator {
	return &ContentGenerator{gen: gen}
}

// Generate asks the model for pandoc-flavored markdown slides following the
// outline. outline is the raw response of the structure stage; reference is
// the optional reference document content.
func (g *ContentGenerator) Generate(ctx context.Context, outline, reference string) (string, llm.Usage, error) {
	content, usage, err := g.gen.Generate(ctx, llm.Request{
		System: prompt.ContentSystem(),
		User:   prompt.ContentUser(outline, reference),
	})
	if err != nil {
		return "", llm.Usage{}, fmt.Errorf("content generation: %w", err)
	}
	return content, usage, nil
}
