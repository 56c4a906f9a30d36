package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/deck"
	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/mermaid"
	"github.com/alnah/go-deckgen/internal/pandoc"
	"github.com/alnah/go-deckgen/internal/refdoc"
)

// defaultNumSlides is the deck size used when --slides is not given.
const defaultNumSlides = 20

// defaultPrompt is used when only a reference file is supplied.
const defaultPrompt = "Create a presentation to summarize the document."

// generateOptions holds validated options for the generate command.
type generateOptions struct {
	name       string
	prompt     string
	inputPath  string
	numSlides  int
	noDiagrams bool
	outputDir  string
	model      string
}

// GenerateCmd creates the generate command.
// The env parameter provides injectable dependencies for testing.
func GenerateCmd(env *Env) *cobra.Command {
	var (
		promptFlag string
		input      string
		slides     int
		noDiagrams bool
		outputDir  string
		model      string
	)

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a slide deck from a prompt or reference document",
		Long: `Generate a slide deck from a prompt and/or a reference markdown document.

The pipeline runs three stages: outline generation, slide content generation,
and (unless disabled) mermaid diagram enhancement with a validation pass.
All artifacts are written to a timestamped session directory; the markdown is
converted to PowerPoint with pandoc when it is installed.

At least one of --prompt and --input must be supplied.`,
		Example: `  deckgen generate ai_trends -p "Latest trends in AI for 2026"
  deckgen generate utilities -f reference.md -n 15
  deckgen generate summary -f notes.md -p "Focus on the architecture" --no-diagrams`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseGenerateOptions(args[0], promptFlag, input, slides, noDiagrams, outputDir, model)
			if err != nil {
				return err
			}
			return runGenerate(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Presentation request (required unless --input is given)")
	cmd.Flags().StringVarP(&input, "input", "f", "", "Path to a reference markdown file")
	cmd.Flags().IntVarP(&slides, "slides", "n", defaultNumSlides, "Number of slides to generate")
	cmd.Flags().BoolVar(&noDiagrams, "no-diagrams", false, "Skip mermaid diagram enhancement")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Directory for session output (default: config, then ./outputs)")
	cmd.Flags().StringVar(&model, "model", "", "Model to use for all generation calls")

	return cmd
}

// parseGenerateOptions validates CLI inputs into generateOptions.
// All validation happens at the CLI boundary, before any network call.
func parseGenerateOptions(name, prompt, input string, slides int, noDiagrams bool, outputDir, model string) (generateOptions, error) {
	if prompt == "" && input == "" {
		return generateOptions{}, ErrMissingInput
	}
	if slides < 1 {
		return generateOptions{}, fmt.Errorf("got %d: %w", slides, ErrInvalidSlideCount)
	}
	if prompt == "" {
		prompt = defaultPrompt
	}

	return generateOptions{
		name:       name,
		prompt:     prompt,
		inputPath:  input,
		numSlides:  slides,
		noDiagrams: noDiagrams,
		outputDir:  outputDir,
		model:      model,
	}, nil
}

// runGenerate executes the full generation pipeline with validated options.
func runGenerate(cmd *cobra.Command, env *Env, opts generateOptions) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast, before any external call) ===

	if opts.inputPath != "" {
		if _, err := os.Stat(opts.inputPath); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%s: %w", opts.inputPath, ErrFileNotFound)
			}
			return fmt.Errorf("cannot access file: %w", err)
		}
	}

	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if outputDir == "" {
		outputDir = "./outputs"
	}
	if err := config.ValidOutputDir(outputDir); err != nil {
		return err
	}

	apiKey := env.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return ErrAPIKeyMissing
	}

	model := opts.model
	if model == "" {
		model = cfg.Model
	}

	paths := BuildOutputPaths(opts.name, config.ExpandPath(outputDir), env.Now())

	// === LOAD REFERENCE ===

	var reference string
	if opts.inputPath != "" {
		reference, err = refdoc.Load(opts.inputPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stderr, "Reference: %s (%d sections, %d words)\n",
			opts.inputPath, len(refdoc.Outline(reference)), refdoc.WordCount(reference))
	}

	var genOpts []llm.Option
	if model != "" {
		genOpts = append(genOpts, llm.WithModel(model))
	}
	gen := env.GeneratorFactory.NewGenerator(apiKey, genOpts...)

	// === STAGE 1: OUTLINE ===

	fmt.Fprintln(env.Stderr, "1/3 Generating slide outline...")

	structure, structureUsage, err := deck.NewStructureGenerator(gen).Generate(ctx, opts.prompt, reference, opts.numSlides)
	if err != nil {
		return err
	}
	if outline, err := deck.ParseOutline(structure); err == nil {
		fmt.Fprintf(env.Stderr, "  Outline: %q, %d slides\n", outline.Title, len(outline.Slides))
	} else {
		// The content stage consumes the raw response either way.
		fmt.Fprintf(env.Stderr, "  Warning: outline is not valid JSON: %v\n", err)
	}

	// === STAGE 2: CONTENT ===

	fmt.Fprintln(env.Stderr, "2/3 Generating slide content...")

	content, contentUsage, err := deck.NewContentGenerator(gen).Generate(ctx, structure, reference)
	if err != nil {
		return err
	}
	if err := writeFile(paths.ContentMD, content); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "  Content saved: %s\n", paths.ContentMD)

	totalUsage := structureUsage.Add(contentUsage)

	if opts.noDiagrams {
		convert(ctx, env, paths.ContentMD, paths.FinalDeck)
		printUsage(env, totalUsage, llm.Usage{}, false)
		return nil
	}

	// === STAGE 3: DIAGRAMS ===

	fmt.Fprintln(env.Stderr, "3/3 Enhancing with mermaid diagrams...")

	processor := mermaid.NewProcessor(gen, mermaid.WithNormalizer(newNormalizer(cfg)))

	// The basic deck conversion only needs the already-persisted content file,
	// so it runs alongside the diagram stage. The LLM stages themselves stay
	// strictly sequential.
	var result mermaid.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		convert(gctx, env, paths.ContentMD, paths.BasicDeck)
		return nil
	})
	g.Go(func() error {
		var perr error
		result, perr = processor.Process(gctx, content)
		return perr
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeFile(paths.FinalMD, result.Final); err != nil {
		return err
	}
	fmt.Fprintf(env.Stderr, "  Enhanced content saved: %s\n", paths.FinalMD)

	reportFindings(env, result)
	convert(ctx, env, paths.FinalMD, paths.FinalDeck)
	printUsage(env, totalUsage, result.Usage, true)
	return nil
}

// newNormalizer builds the diagram normalizer from user config.
func newNormalizer(cfg config.Config) *mermaid.Normalizer {
	var opts []mermaid.NormalizerOption
	if cfg.OrphanLookback > 0 {
		opts = append(opts, mermaid.WithOrphanLookback(cfg.OrphanLookback))
	}
	if cfg.StrictFences {
		opts = append(opts, mermaid.WithStrictness(mermaid.StrictnessStrict))
	}
	return mermaid.NewNormalizer(opts...)
}

// reportFindings surfaces structural findings without failing the run.
// Validation is advisory: the artifacts are already persisted.
func reportFindings(env *Env, result mermaid.Result) {
	for _, b := range result.Unterminated {
		fmt.Fprintf(env.Stderr, "  Warning: unterminated diagram block at line %d (left as-is)\n", b.Start+1)
	}
	if result.Report.Valid() {
		return
	}
	fmt.Fprintf(env.Stderr, "  Warning: %d structural issue(s) in final document:\n", len(result.Report.Violations))
	for _, v := range result.Report.Violations {
		fmt.Fprintf(env.Stderr, "    %s\n", v)
	}
}

// convert runs the pandoc conversion. Converter failures are reported and
// swallowed: the markdown artifact already exists on disk.
func convert(ctx context.Context, env *Env, input, output string) {
	conv, err := env.ConverterFactory.NewConverter()
	if err != nil {
		if errors.Is(err, pandoc.ErrNotFound) {
			fmt.Fprintln(env.Stderr, "  Warning: pandoc is not installed; skipping deck conversion")
			return
		}
		fmt.Fprintf(env.Stderr, "  Warning: converter unavailable: %v\n", err)
		return
	}

	if err := conv.Convert(ctx, input, output); err != nil {
		fmt.Fprintf(env.Stderr, "  Warning: conversion failed: %v\n", err)
		return
	}
	fmt.Fprintf(env.Stderr, "  Deck saved: %s\n", output)
}

// printUsage prints the token usage statistics for the run.
func printUsage(env *Env, base, diagrams llm.Usage, withDiagrams bool) {
	fmt.Fprintln(env.Stderr, "\nUsage statistics:")
	fmt.Fprintf(env.Stderr, "  Outline + content tokens: %d\n", base.TotalTokens)
	if withDiagrams {
		fmt.Fprintf(env.Stderr, "  Diagram processing tokens: %d\n", diagrams.TotalTokens)
	}
	total := base.Add(diagrams)
	fmt.Fprintf(env.Stderr, "  Total tokens: %d (prompt %d, completion %d)\n",
		total.TotalTokens, total.PromptTokens, total.CompletionTokens)
}
