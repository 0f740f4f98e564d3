package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"cvalign-lens/internal/llm"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Completer on the Gemini API backend.
type Client struct {
	models contentGenerator
	model  string
}

// NewClient creates a Gemini-backed completer.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newClient(client.Models, model), nil
}

func newClient(models contentGenerator, model string) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends the user prompt with the system prompt as system instruction.
func (c *Client) Complete(ctx context.Context, in llm.Request) (string, error) {
	temp := in.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(in.MaxTokens),
	}
	if strings.TrimSpace(in.System) != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: in.System}}}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(in.User), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini response: %w", llm.ErrEmptyResponse)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
		// first candidate only
		break
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("gemini response: %w", llm.ErrEmptyResponse)
	}
	return output, nil
}

var _ llm.Completer = (*Client)(nil)
