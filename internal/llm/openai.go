package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-deckgen/internal/apierr"
)

// chatCompleter is an internal interface for OpenAI chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance check.
var _ Generator = (*OpenAIGenerator)(nil)

// Default configuration values.
const (
	// Model configuration.
	defaultModel           = "gpt-4o-mini"
	defaultMaxOutputTokens = 10000

	// Retry configuration.
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 30 * time.Second
)

// OpenAIGenerator produces text via OpenAI's chat completion API.
// It supports automatic retries with exponential backoff for transient errors.
type OpenAIGenerator struct {
	client     chatCompleter
	model      string
	maxTokens  int
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// Option configures an OpenAIGenerator.
type Option func(*OpenAIGenerator)

// WithModel sets the default model for generation.
func WithModel(model string) Option {
	return func(g *OpenAIGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithMaxOutputTokens sets the default maximum output token limit.
func WithMaxOutputTokens(n int) Option {
	return func(g *OpenAIGenerator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) Option {
	return func(g *OpenAIGenerator) {
		if n >= 0 {
			g.maxRetries = n
		}
	}
}

// WithRetryDelays sets the base and max delays for exponential backoff.
func WithRetryDelays(base, max time.Duration) Option {
	return func(g *OpenAIGenerator) {
		if base > 0 {
			g.baseDelay = base
		}
		if max > 0 {
			g.maxDelay = max
		}
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) Option {
	return func(g *OpenAIGenerator) {
		g.client = cc
	}
}

// NewOpenAIGenerator creates a generator backed by the given OpenAI client.
// Use options to customize model, token limits, and retry behavior.
func NewOpenAIGenerator(client *openai.Client, opts ...Option) *OpenAIGenerator {
	g := &OpenAIGenerator{
		client:     client,
		model:      defaultModel,
		maxTokens:  defaultMaxOutputTokens,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate performs a single chat completion round-trip.
// Automatically retries on transient errors (rate limits, timeouts, server errors).
// The returned Usage reflects the final (successful) attempt only.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, Usage, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.maxTokens
	}

	ccReq := openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.User,
			},
		},
		Temperature: 0, // Deterministic output for reproducibility
	}

	return g.generateWithRetry(ctx, ccReq)
}

// response pairs text with usage so RetryWithBackoff can carry both.
type response struct {
	text  string
	usage Usage
}

// generateWithRetry executes the completion with exponential backoff retry.
func (g *OpenAIGenerator) generateWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (string, Usage, error) {
	cfg := apierr.RetryConfig{
		MaxRetries: g.maxRetries,
		BaseDelay:  g.baseDelay,
		MaxDelay:   g.maxDelay,
	}

	result, err := apierr.RetryWithBackoff(ctx, cfg, func() (response, error) {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return response{}, classifyError(err)
		}
		if len(resp.Choices) == 0 {
			return response{}, ErrEmptyResponse
		}
		return response{
			text: resp.Choices[0].Message.Content,
			usage: Usage{
				PromptTokens:     resp.Usage.PromptTokens,
				CompletionTokens: resp.Usage.CompletionTokens,
				TotalTokens:      resp.Usage.TotalTokens,
			},
		}, nil
	}, isRetryableError)

	if err != nil {
		return "", Usage{}, err
	}
	return result.text, result.usage, nil
}

// classifyError maps OpenAI API errors to apierr sentinel errors.
// Uses errors.As for robust error type checking instead of string matching.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	// Check for typed API errors first (most reliable).
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// Distinguish between temporary rate limit and quota exceeded (billing issue).
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrRateLimit)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrQuotaExceeded)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrAuthFailed)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrTimeout)
		case http.StatusBadRequest:
			// Check for context length exceeded in message.
			if strings.Contains(apiErr.Message, "context_length") ||
				strings.Contains(apiErr.Message, "maximum context length") {
				return fmt.Errorf("API rejected: %w", ErrContextTooLong)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, apierr.ErrBadRequest)
		}
	}

	// Check for context timeout/deadline exceeded.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	// Fallback: check error message for context length (some errors may not be typed).
	errStr := err.Error()
	if strings.Contains(errStr, "context_length_exceeded") ||
		strings.Contains(errStr, "maximum context length") {
		return fmt.Errorf("API rejected: %w", ErrContextTooLong)
	}

	return err
}

// isRetryableError determines if an error is transient and should be retried.
func isRetryableError(err error) bool {
	// Rate limits are retryable (with backoff).
	if errors.Is(err, apierr.ErrRateLimit) {
		return true
	}

	// Timeouts are retryable.
	if errors.Is(err, apierr.ErrTimeout) {
		return true
	}

	// Server errors (5xx) are retryable.
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	// Context cancellation is not retryable.
	if errors.Is(err, context.Canceled) {
		return false
	}

	// Auth errors are not retryable.
	if errors.Is(err, apierr.ErrAuthFailed) {
		return false
	}

	// Oversized input is not retryable.
	if errors.Is(err, ErrContextTooLong) {
		return false
	}

	return false
}
