// Package llm wraps the hosted model provider with model-name fallback at
// construction and exponential-backoff retries per call.
//
// The provider is reached through its OpenAI-compatible endpoint; content
// blocked by the provider's harm-category filters surfaces as an API error
// and rides the same retry policy as transient failures.
package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	chaterrors "github.com/sahayak-ai/sahayak/internal/errors"
)

const (
	// DefaultModel is the preferred backend model.
	DefaultModel = "gemini-1.5-flash"

	// apologyText is returned when the provider succeeds with empty output.
	// An empty result is success, not a retryable failure.
	apologyText = "I apologize, but I couldn't generate a proper response. Please try again."

	// connectionProbe and connectionMarker implement TestConnection.
	connectionProbe  = "Hello, please respond with 'Connection successful'"
	connectionMarker = "Connection successful"

	// probeMaxTokens bounds the trivial generation used to select a model.
	probeMaxTokens = 8
)

// fallbackModels is the fixed descending list of known-good alternatives
// tried after the requested model.
var fallbackModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
	"gemini-1.0-pro",
}

// Completer is the provider call surface; *openai.Client satisfies it.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds client construction parameters.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// ModelInfo describes the client's selected backend.
type ModelInfo struct {
	ModelName        string `json:"model_name"`
	Provider         string `json:"provider"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	MaxRetries       int    `json:"max_retries"`
}

// Client is a resilient model client. The selected model is set once at
// construction and read-only thereafter, so concurrent Generate calls on
// one instance are safe.
type Client struct {
	completer  Completer
	model      string
	apiKeySet  bool
	maxRetries int
	baseDelay  time.Duration

	// sleep is the ctx-aware wait between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client against the provider's OpenAI-compatible endpoint
// and selects a working model from the fallback list. If every candidate
// fails the probe, it fails with CodeNoModelAvailable.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("model provider API key not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return NewWithCompleter(ctx, cfg, openai.NewClientWithConfig(clientConfig))
}

// NewWithCompleter creates a client on an explicit provider transport.
func NewWithCompleter(ctx context.Context, cfg Config, completer Completer) (*Client, error) {
	c := &Client{
		completer:  completer,
		apiKeySet:  cfg.APIKey != "",
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		sleep:      sleepCtx,
	}
	if c.maxRetries < 0 {
		c.maxRetries = 0
	}
	if c.baseDelay <= 0 {
		c.baseDelay = time.Second
	}

	model, err := c.selectModel(ctx, cfg.Model)
	if err != nil {
		return nil, err
	}
	c.model = model

	slog.Info("model client initialized", "model", c.model, "max_retries", c.maxRetries)
	return c, nil
}

// selectModel probes each candidate with a trivial generation and returns
// the first one that responds without error.
func (c *Client) selectModel(ctx context.Context, requested string) (string, error) {
	candidates := candidateModels(requested)

	var lastErr error
	for _, model := range candidates {
		_, err := c.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:     model,
			MaxTokens: probeMaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: "test"},
			},
		})
		if err == nil {
			return model, nil
		}
		lastErr = err
		slog.Warn("model probe failed", "model", model, "error", err)
	}

	return "", chaterrors.NoModelAvailable(candidates, lastErr)
}

// Generate produces text for the prompt, retrying provider errors with
// exponential backoff. After the full retry budget it fails with
// CodeRetriesExhausted carrying the last underlying error; cancellation
// between attempts fails with CodeCanceled.
func (c *Client) Generate(ctx context.Context, prompt, systemMessage string, temperature float32, maxTokens int) (string, error) {
	fullPrompt := buildFullPrompt(prompt, systemMessage)

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	attempts := c.maxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		resp, err := c.completer.CreateChatCompletion(ctx, req)
		if err == nil {
			text := ""
			if len(resp.Choices) > 0 {
				text = strings.TrimSpace(resp.Choices[0].Message.Content)
			}
			if text == "" {
				slog.Warn("empty response from provider", "attempt", attempt+1)
				return apologyText, nil
			}
			slog.Debug("generated response", "attempt", attempt+1, "model", c.model)
			return text, nil
		}

		if ctx.Err() != nil {
			return "", chaterrors.Canceled(ctx.Err())
		}

		lastErr = err
		slog.Warn("provider call failed", "attempt", attempt+1, "error", err)

		if attempt < c.maxRetries {
			delay := c.baseDelay * (1 << attempt)
			slog.Debug("retrying after backoff", "delay", delay)
			if err := c.sleep(ctx, delay); err != nil {
				return "", chaterrors.Canceled(err)
			}
		}
	}

	return "", chaterrors.RetriesExhausted(attempts, lastErr)
}

// TestConnection sends one fixed probe and checks for the expected marker.
func (c *Client) TestConnection(ctx context.Context) bool {
	resp, err := c.Generate(ctx, connectionProbe, "", 0.1, 0)
	if err != nil {
		slog.Error("connection test failed", "error", err)
		return false
	}
	return strings.Contains(resp, connectionMarker)
}

// Model returns the selected backend model name.
func (c *Client) Model() string {
	return c.model
}

// Info returns information about the configured client.
func (c *Client) Info() ModelInfo {
	return ModelInfo{
		ModelName:        c.model,
		Provider:         "Gemini",
		APIKeyConfigured: c.apiKeySet,
		MaxRetries:       c.maxRetries,
	}
}

// buildFullPrompt combines the system message and user prompt into the
// single provider-facing message.
func buildFullPrompt(prompt, systemMessage string) string {
	if systemMessage != "" {
		return systemMessage + "\n\nUser: " + prompt + "\n\nAssistant:"
	}
	return "User: " + prompt + "\n\nAssistant:"
}

// candidateModels returns the requested model followed by the fixed
// fallback list, without duplicates.
func candidateModels(requested string) []string {
	out := make([]string, 0, len(fallbackModels)+1)
	seen := make(map[string]struct{}, len(fallbackModels)+1)
	for _, m := range append([]string{requested}, fallbackModels...) {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// guard against accidental interface drift.
var _ Completer = (*openai.Client)(nil)
