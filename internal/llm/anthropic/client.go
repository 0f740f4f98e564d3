package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"cvalign-lens/internal/llm"
)

const (
	DefaultModel   = "claude-sonnet-4-5"
	defaultTimeout = 120 * time.Second
)

type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client implements llm.Completer with the Anthropic Messages API.
type Client struct {
	messages messageCreator
	model    string
}

// NewClient builds a Messages API client. SDK retries are disabled.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	)
	return newClient(&client.Messages, model), nil
}

func newClient(messages messageCreator, model string) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Client{messages: messages, model: model}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends a single user turn and joins the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, in llm.Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(in.MaxTokens),
		Temperature: anthropic.Float(float64(in.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(in.User)),
		},
	}
	if strings.TrimSpace(in.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: in.System}}
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("anthropic response: %w", llm.ErrEmptyResponse)
	}

	var builder strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		builder.WriteString(block.Text)
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", fmt.Errorf("anthropic response: %w", llm.ErrEmptyResponse)
	}
	return output, nil
}

var _ llm.Completer = (*Client)(nil)
