// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/alokagarwal565/scenario-advisor/internal/common"
	"github.com/alokagarwal565/scenario-advisor/internal/interfaces"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultRateLimit = 2 // requests per second
)

// Client implements the TextGenerator interface over the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the request rate limit in requests per second
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Generate produces text for a prompt. Network, timeout and quota
// failures are marked transient so the caller's retry policy applies;
// malformed responses are permanent.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	c.logger.Debug().Str("model", c.model).Int("prompt_len", len(prompt)).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", classifyError(fmt.Errorf("failed to generate content: %w", err))
	}

	return extractTextFromResponse(result)
}

// classifyError marks retryable failures (network, deadline, rate/quota)
// as transient.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.MarkTransient(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return common.MarkTransient(err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return common.MarkTransient(err)
		}
		return err
	}

	// Fall back to message inspection for wrapped transport errors.
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"timeout", "connection refused", "connection reset", "quota", "rate limit", "unavailable"} {
		if strings.Contains(msg, marker) {
			return common.MarkTransient(err)
		}
	}

	return err
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements TextGenerator
var _ interfaces.TextGenerator = (*Client)(nil)
