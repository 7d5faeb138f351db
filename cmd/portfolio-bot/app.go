package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/config"
	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/ark"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/completion"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/gemini"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/knowledge"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/openai"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/storage"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// app everything a delivery needs, built once per command
type app struct {
	cfg    *config.Config
	kb     *entity.KnowledgeBase
	conv   *usecase.Conversation
	logger *zap.Logger

	closeCompleter func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if knowledgeFile != "" {
		cfg.KnowledgeFile = knowledgeFile
	}

	kb, err := knowledge.Load(ctx, cfg.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	logger.Info("knowledge base loaded",
		zap.String("name", kb.Name()),
		zap.String("source", sourceName(cfg.KnowledgeFile)))

	replyCue := usecase.NewPromptBuilder(kb).ReplyCue()
	completer, closeCompleter := newCompleter(ctx, cfg.AI, replyCue, logger)

	conv, err := usecase.NewChatUseCase(completer, storage.NewMemoryChatRepository(), kb, logger)
	if err != nil {
		_ = closeCompleter()
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	return &app{
		cfg:            cfg,
		kb:             kb,
		conv:           conv,
		logger:         logger,
		closeCompleter: closeCompleter,
	}, nil
}

// Close waits for a pending reply, then releases the remote client
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.conv.Close(ctx); err != nil {
		a.logger.Warn("pending reply abandoned on shutdown", zap.Error(err))
	}
	if err := a.closeCompleter(); err != nil {
		a.logger.Warn("failed to close completion client", zap.Error(err))
	}
}

// newCompleter picks the adapter for the configured provider. A missing
// credential or a client that fails to build leaves the bot in fallback mode.
func newCompleter(ctx context.Context, cfg config.AIConfig, replyCue string, logger *zap.Logger) (repository.CompletionRepository, func() error) {
	noop := func() error { return nil }

	if !cfg.Enabled() {
		logger.Info("remote model not configured, answering from keywords only",
			zap.String("provider", string(cfg.Provider)))
		return completion.NewUnavailable(), noop
	}

	var (
		client repository.CompletionRepository
		closer = noop
		err    error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		var g *gemini.Client
		g, err = gemini.NewGeminiClient(ctx, gemini.Options{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			ReplyCue:    replyCue,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Logger:      logger,
		})
		if err == nil {
			client, closer = g, g.Close
		}
	case config.ProviderOpenAI:
		client, err = openai.NewOpenAIClient(openai.Options{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			BaseURL:     cfg.OpenAIBaseURL,
			ReplyCue:    replyCue,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Logger:      logger,
		})
	case config.ProviderArk:
		client, err = ark.NewArkClient(ctx, ark.Options{
			APIKey:      cfg.ArkAPIKey,
			Model:       cfg.ArkModel,
			BaseURL:     cfg.ArkBaseURL,
			Region:      cfg.ArkRegion,
			ReplyCue:    replyCue,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Logger:      logger,
		})
	default:
		err = fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if err != nil {
		if !errors.Is(err, repository.ErrRemoteUnavailable) {
			logger.Warn("failed to initialize remote model, continuing with keyword answers",
				zap.String("provider", string(cfg.Provider)), zap.Error(err))
		}
		return completion.NewUnavailable(), noop
	}

	logger.Info("remote model ready",
		zap.String("provider", string(cfg.Provider)),
		zap.String("model", cfg.Model()))
	return client, closer
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
