// Package ark adapts Volcengine Ark chat models, via eino, to the completion port.
package ark

import (
	"context"
	"fmt"
	"strings"

	arkmodel "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/completion"
)

const providerName = "ark"

// Options Ark endpoint settings
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	Region      string
	ReplyCue    string
	Temperature *float64
	MaxTokens   *int
	Logger      *zap.Logger
}

// Client completion adapter over any eino chat model
type Client struct {
	model    model.BaseChatModel
	replyCue string
	logger   *zap.Logger
}

var _ repository.CompletionRepository = (*Client)(nil)

// NewArkClient builds the Ark chat model. An empty key yields ErrRemoteUnavailable.
func NewArkClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, repository.ErrRemoteUnavailable
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("ark model name is empty")
	}

	var temperature *float32
	if opts.Temperature != nil {
		val := float32(*opts.Temperature)
		temperature = &val
	}

	var maxTokens *int
	if opts.MaxTokens != nil {
		val := *opts.MaxTokens
		maxTokens = &val
	}

	// the SDK retries twice by default
	noRetry := 0

	chatModel, err := arkmodel.NewChatModel(ctx, &arkmodel.ChatModelConfig{
		BaseURL:     opts.BaseURL,
		Region:      opts.Region,
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		RetryTimes:  &noRetry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ark chat model: %w", err)
	}

	return NewWithModel(chatModel, opts.ReplyCue, opts.Logger), nil
}

// NewWithModel wraps an already built eino chat model
func NewWithModel(chatModel model.BaseChatModel, replyCue string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		model:    chatModel,
		replyCue: replyCue,
		logger:   logger.With(zap.String("provider", providerName)),
	}
}

// Complete one Generate call with the composed prompt as a single user message
func (c *Client) Complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	return completion.Guard(providerName, func() (string, error) {
		prompt := completion.ComposePrompt(systemPrompt, userInput, c.replyCue)

		resp, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
		if err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}
		if resp == nil {
			return "", fmt.Errorf("nil response message")
		}

		text := strings.TrimSpace(resp.Content)
		c.logger.Debug("ark reply", zap.Int("chars", len(text)))
		return text, nil
	})
}
