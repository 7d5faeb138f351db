package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/portfolio-bot/config"
	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/openai"
)

func TestNewCompleterWithoutCredential(t *testing.T) {
	for _, provider := range []config.Provider{config.ProviderGemini, config.ProviderOpenAI, config.ProviderArk} {
		t.Run(string(provider), func(t *testing.T) {
			c, closer := newCompleter(context.Background(), config.AIConfig{Provider: provider}, "", zap.NewNop())
			defer closer()

			_, err := c.Complete(context.Background(), "system", "hi")
			assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
		})
	}
}

func TestNewCompleterOpenAI(t *testing.T) {
	c, closer := newCompleter(context.Background(), config.AIConfig{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "key",
		OpenAIModel:  "gpt-4o-mini",
	}, "Reply like Sam:", zap.NewNop())
	defer closer()

	assert.IsType(t, &openai.Client{}, c)
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	for _, k := range []string{"KNOWLEDGE_FILE", "COMPLETION_PROVIDER", "AI_TEMPERATURE", "AI_MAX_TOKENS", "PORT", "HTTP_ADDR", "TELEGRAM_CHAT_ID"} {
		t.Setenv(k, "")
	}
	t.Cleanup(func() { knowledgeFile = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPromptCommandUsesBuiltInProfile(t *testing.T) {
	out := runRoot(t, "prompt")

	assert.True(t, strings.HasPrefix(out, "You are speaking as Aashmit"))
	assert.True(t, strings.HasSuffix(out, "Reply like Aashmit:\n"))
}

func TestPromptCommandWithKnowledgeFlag(t *testing.T) {
	data, err := yaml.Marshal(entity.Profile{
		Name:     "Sam Rivera",
		Nickname: "Sam",
		Contact:  entity.Contact{GitHub: "https://github.com/sam"},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sam.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out := runRoot(t, "prompt", "--knowledge", path)

	assert.Contains(t, out, "- Name: Sam Rivera")
	assert.Contains(t, out, "- GitHub: https://github.com/sam")
	assert.NotContains(t, out, "Aashmit")
	assert.True(t, strings.HasSuffix(out, "Reply like Sam:\n"))
}
