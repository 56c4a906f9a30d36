package cli

import (
	"io"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/pandoc"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have production defaults via DefaultEnv. Tests override specific
// fields using the With* options or by creating a custom Env.
type Env struct {
	// I/O and environment
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ConfigLoader     ConfigLoader
	GeneratorFactory GeneratorFactory
	ConverterFactory ConverterFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// GeneratorFactory creates text generators for the pipeline stages.
type GeneratorFactory interface {
	NewGenerator(apiKey string, opts ...llm.Option) llm.Generator
}

// ConverterFactory creates markdown-to-deck converters.
// Returns pandoc.ErrNotFound when the binary is missing; callers report that
// and continue.
type ConverterFactory interface {
	NewConverter() (*pandoc.Converter, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithGeneratorFactory sets the generator factory.
func WithGeneratorFactory(f GeneratorFactory) EnvOption {
	return func(e *Env) {
		e.GeneratorFactory = f
	}
}

// WithConverterFactory sets the converter factory.
func WithConverterFactory(f ConverterFactory) EnvOption {
	return func(e *Env) {
		e.ConverterFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stderr:           os.Stderr,
		Getenv:           os.Getenv,
		Now:              time.Now,
		ConfigLoader:     &defaultConfigLoader{},
		GeneratorFactory: &defaultGeneratorFactory{},
		ConverterFactory: &defaultConverterFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultGeneratorFactory implements GeneratorFactory using OpenAI.
type defaultGeneratorFactory struct{}

func (defaultGeneratorFactory) NewGenerator(apiKey string, opts ...llm.Option) llm.Generator {
	client := openai.NewClient(apiKey)
	return llm.NewOpenAIGenerator(client, opts...)
}

// defaultConverterFactory implements ConverterFactory using pandoc.
type defaultConverterFactory struct{}

func (defaultConverterFactory) NewConverter() (*pandoc.Converter, error) {
	return pandoc.NewConverter()
}
