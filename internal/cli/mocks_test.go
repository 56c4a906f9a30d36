package cli

import (
	"context"
	"sync"

	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/llm"
	"github.com/alnah/go-deckgen/internal/pandoc"
)

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock GeneratorFactory + scripted Generator
// ---------------------------------------------------------------------------

type mockGeneratorFactory struct {
	Generator llm.Generator

	mu       sync.Mutex
	newCalls int
	apiKeys  []string
}

func (m *mockGeneratorFactory) NewGenerator(apiKey string, _ ...llm.Option) llm.Generator {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newCalls++
	m.apiKeys = append(m.apiKeys, apiKey)
	return m.Generator
}

func (m *mockGeneratorFactory) NewCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newCalls
}

// scriptedGenerator returns one response per call, in order. Running past the
// script is a bug in the test scenario and yields an empty response.
type scriptedGenerator struct {
	responses []string
	usages    []llm.Usage
	errs      []error

	mu       sync.Mutex
	requests []llm.Request
}

func (s *scriptedGenerator) Generate(_ context.Context, req llm.Request) (string, llm.Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.requests)
	s.requests = append(s.requests, req)

	if call < len(s.errs) && s.errs[call] != nil {
		return "", llm.Usage{}, s.errs[call]
	}

	var resp string
	if call < len(s.responses) {
		resp = s.responses[call]
	}
	var usage llm.Usage
	if call < len(s.usages) {
		usage = s.usages[call]
	}
	return resp, usage, nil
}

func (s *scriptedGenerator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// ---------------------------------------------------------------------------
// Mock ConverterFactory
// ---------------------------------------------------------------------------

// conversion records one Convert invocation.
type conversion struct {
	Input  string
	Output string
}

// mockConverterFactory hands out converters whose run function records the
// conversions instead of invoking pandoc.
type mockConverterFactory struct {
	NewErr error // returned instead of a converter when set

	mu          sync.Mutex
	conversions []conversion
}

func (m *mockConverterFactory) NewConverter() (*pandoc.Converter, error) {
	if m.NewErr != nil {
		return nil, m.NewErr
	}
	return pandoc.NewConverter(
		pandoc.WithPath("/usr/bin/pandoc"),
		pandoc.WithRun(func(_ context.Context, _ string, args []string) (string, error) {
			// args are ["-o", output, input]
			m.mu.Lock()
			m.conversions = append(m.conversions, conversion{Input: args[2], Output: args[1]})
			m.mu.Unlock()
			return "", nil
		}),
	)
}

func (m *mockConverterFactory) Conversions() []conversion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]conversion(nil), m.conversions...)
}
