package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/metrics"
	"google.golang.org/genai"
)

var _ interfaces.TextGenerator = (*GeminiClient)(nil)

const (
	geminiSource    = "gemini"
	geminiOperation = "generate_content"
)

var errGeminiDisabled = errors.New("GEMINI_API_KEY is not configured")

// GeminiClient calls generateContent on the Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a client for model. An empty apiKey yields a client
// whose Generate always returns "". endpoint overrides the API base URL.
func NewGeminiClient(ctx context.Context, apiKey, model, endpoint string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{model: model}, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if endpoint != "" {
		cfg.HTTPOptions.BaseURL = endpoint
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Enabled reports whether an API key was configured
func (c *GeminiClient) Enabled() bool {
	return c != nil && c.client != nil
}

// Generate sends a single user turn and returns the first candidate's text
func (c *GeminiClient) Generate(ctx context.Context, prompt string) string {
	if !c.Enabled() {
		observe(geminiSource, geminiOperation, metrics.OutcomeError, errGeminiDisabled)
		return ""
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		observe(geminiSource, geminiOperation, metrics.OutcomeError, err)
		return ""
	}

	text := resp.Text()
	if text == "" {
		observe(geminiSource, geminiOperation, metrics.OutcomeEmpty, nil)
		return ""
	}

	observe(geminiSource, geminiOperation, metrics.OutcomeOK, nil)
	return text
}
