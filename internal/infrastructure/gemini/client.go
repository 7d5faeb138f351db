package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/completion"
)

const providerName = "gemini"

// Options Gemini client settings
type Options struct {
	APIKey      string
	Model       string
	Endpoint    string
	ReplyCue    string
	Temperature *float64
	MaxTokens   *int
	Logger      *zap.Logger
}

// Client Gemini completion adapter
type Client struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	replyCue string
	logger   *zap.Logger
}

var _ repository.CompletionRepository = (*Client)(nil)

// NewGeminiClient creates the Gemini client. An empty key yields ErrRemoteUnavailable
// so callers can switch to the fallback adapter.
func NewGeminiClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, repository.ErrRemoteUnavailable
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("gemini model name is empty")
	}

	clientOpts := []option.ClientOption{
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(newHTTPClient(opts.APIKey)),
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	if opts.Temperature != nil {
		model.SetTemperature(float32(*opts.Temperature))
	}
	if opts.MaxTokens != nil {
		model.SetMaxOutputTokens(int32(*opts.MaxTokens))
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client:   client,
		model:    model,
		replyCue: opts.ReplyCue,
		logger:   logger.With(zap.String("provider", providerName), zap.String("model", opts.Model)),
	}, nil
}

// Complete one GenerateContent call with the composed prompt as a single text part
func (g *Client) Complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	return completion.Guard(providerName, func() (string, error) {
		prompt := completion.ComposePrompt(systemPrompt, userInput, g.replyCue)

		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("failed to generate response: %w", err)
		}

		if resp == nil || len(resp.Candidates) == 0 {
			return "", fmt.Errorf("no response candidates")
		}

		text := extractText(resp)
		g.logger.Debug("gemini reply", zap.Int("chars", len(text)))
		return text, nil
	})
}

// extractText concatenates the text parts of the first candidate with content
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
		// first candidate with content is the answer
		if result.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(result.String())
}

// Close releases the underlying connection
func (g *Client) Close() error {
	return g.client.Close()
}
