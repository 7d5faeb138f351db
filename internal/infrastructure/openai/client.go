package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/completion"
)

const providerName = "openai"

// Options chat-completions client settings. BaseURL points the client at any
// OpenAI compatible endpoint.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	ReplyCue    string
	Temperature *float64
	MaxTokens   *int
	Logger      *zap.Logger
}

// Client OpenAI chat-completions adapter
type Client struct {
	client oai.Client
	opts   Options
	logger *zap.Logger
}

var _ repository.CompletionRepository = (*Client)(nil)

// NewOpenAIClient an empty key yields ErrRemoteUnavailable
func NewOpenAIClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, repository.ErrRemoteUnavailable
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("openai model name is empty")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client: oai.NewClient(reqOpts...),
		opts:   opts,
		logger: logger.With(zap.String("provider", providerName), zap.String("model", opts.Model)),
	}, nil
}

// Complete one chat completion with the composed prompt as the only user message
func (c *Client) Complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	return completion.Guard(providerName, func() (string, error) {
		prompt := completion.ComposePrompt(systemPrompt, userInput, c.opts.ReplyCue)

		params := oai.ChatCompletionNewParams{
			Model:    oai.ChatModel(c.opts.Model),
			Messages: []oai.ChatCompletionMessageParamUnion{oai.UserMessage(prompt)},
		}
		if c.opts.Temperature != nil {
			params.Temperature = oai.Float(*c.opts.Temperature)
		}
		if c.opts.MaxTokens != nil {
			params.MaxCompletionTokens = oai.Int(int64(*c.opts.MaxTokens))
		}

		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			var apiErr *oai.Error
			if errors.As(err, &apiErr) {
				c.logger.Warn("openai request rejected", zap.Int("status", apiErr.StatusCode))
			}
			return "", fmt.Errorf("chat completion failed: %w", err)
		}
		if resp == nil || len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response choices")
		}

		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		c.logger.Debug("openai reply",
			zap.Int("chars", len(text)),
			zap.Int64("total_tokens", resp.Usage.TotalTokens))
		return text, nil
	})
}
