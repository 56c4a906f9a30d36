package deck

import (
	"context"
	"fmt"

	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/prompt"
)

// StructureGenerator produces the slide outline for a presentation.
type StructureGenerator struct {
	gen llm.Generator
}

// NewStructureGenerator creates a StructureGenerator using the given generator.
func NewStructureGenerator(gen llm.Generator) *StructureGenerator {
	return &StructureGenerator{gen: gen}
}

// Generate asks the model for a slide outline in JSON form.
// reference is the optional reference document content; empty means
// prompt-only generation. The raw response is returned so the content stage
// can consume it even when it is not strictly valid JSON.
func (g *StructureGenerator) Generate(ctx context.Context, userPrompt, reference string, numSlides int) (string, llm.Usage, error) {
	structure, usage, err := g.gen.Generate(ctx, llm.Request{
		System: prompt.StructureSystem(),
		User:   prompt.StructureUser(userPrompt, reference, numSlides),
	})
	if err != nil {
		return "", llm.Usage{}, fmt.Errorf("structure generation: %w", err)
	}
	return structure, usage, nil
}
