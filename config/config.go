package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Provider remote completion backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderArk    Provider = "ark"
)

// Config application configuration
type Config struct {
	AI            AIConfig
	Server        ServerConfig
	Telegram      TelegramConfig
	KnowledgeFile string
}

// AIConfig remote model settings. Missing credentials are allowed and mean
// the bot answers with the fallback classifier only.
type AIConfig struct {
	Provider Provider

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	ArkAPIKey  string
	ArkModel   string
	ArkBaseURL string
	ArkRegion  string

	Temperature *float64
	MaxTokens   *int
}

// Enabled credential (and model) for the selected provider is present
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey != "" && c.GeminiModel != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != "" && c.OpenAIModel != ""
	case ProviderArk:
		return c.ArkAPIKey != "" && c.ArkModel != ""
	}
	return false
}

// Model selected provider's model name
func (c AIConfig) Model() string {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiModel
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderArk:
		return c.ArkModel
	}
	return ""
}

// ServerConfig HTTP listener
type ServerConfig struct {
	Addr string
}

// TelegramConfig optional Telegram front-end
type TelegramConfig struct {
	Token string
	// ChatID the only chat served. 0 binds to the first chat that writes.
	ChatID int64
}

// Enabled token is present
func (c TelegramConfig) Enabled() bool {
	return c.Token != ""
}

// Load .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only
func FromEnv() (*Config, error) {
	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	telegram := TelegramConfig{Token: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))}
	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID value %q: %w", raw, err)
		}
		telegram.ChatID = id
	}

	return &Config{
		AI:            ai,
		Server:        server,
		Telegram:      telegram,
		KnowledgeFile: strings.TrimSpace(os.Getenv("KNOWLEDGE_FILE")),
	}, nil
}

func loadAIConfig() (AIConfig, error) {
	provider := Provider(strings.ToLower(getEnvOrDefault("COMPLETION_PROVIDER", string(ProviderGemini))))
	switch provider {
	case ProviderGemini, ProviderOpenAI, ProviderArk:
	default:
		return AIConfig{}, fmt.Errorf("invalid COMPLETION_PROVIDER value %q", provider)
	}

	temperature, err := parseOptionalFloatEnv("AI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("AI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}
	if maxTokens != nil && *maxTokens <= 0 {
		return AIConfig{}, fmt.Errorf("invalid AI_MAX_TOKENS value %d: must be positive", *maxTokens)
	}

	return AIConfig{
		Provider:      provider,
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		ArkAPIKey:     strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkModel:      strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:    getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:     getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:   temperature,
		MaxTokens:     maxTokens,
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	if addr := strings.TrimSpace(os.Getenv("HTTP_ADDR")); addr != "" {
		return ServerConfig{Addr: addr}, nil
	}

	port := getEnvOrDefault("PORT", "8080")
	if strings.Contains(port, ":") {
		return ServerConfig{Addr: port}, nil
	}
	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
