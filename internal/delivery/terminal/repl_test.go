package terminal

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/knowledge"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/storage"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var clockPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}\] `)

func newREPL(t *testing.T) (*REPL, *bytes.Buffer, *usecase.Conversation) {
	t.Helper()
	kb := entity.NewKnowledgeBase(knowledge.Seed())
	conv, err := usecase.NewChatUseCase(nil, storage.NewMemoryChatRepository(), kb, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	return New(conv, kb, &out, Options{NoColor: true}), &out, conv
}

func TestRunPrintsConversation(t *testing.T) {
	r, out, conv := newREPL(t)

	err := r.Run(context.Background(), strings.NewReader("skills\n\n   \nemail\n"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Regexp(t, clockPrefix, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Aashmit: "+conv.Greeting()))
	assert.Equal(t, "(type /quit to leave)", lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "You: skills"))
	assert.Equal(t, "Aashmit is typing…", lines[3])
	assert.Contains(t, lines[4], "Aashmit: Python, Core Java")
	assert.True(t, strings.HasSuffix(lines[5], "You: email"))
	assert.Contains(t, lines[7], "Aashmit: Mail: ")

	msgs, err := conv.Messages(context.Background())
	require.NoError(t, err)
	assert.Len(t, msgs, 5)
}

func TestRunStopsOnQuit(t *testing.T) {
	r, out, conv := newREPL(t)

	err := r.Run(context.Background(), strings.NewReader("hello\n/quit\nprojects\n"))
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "projects")
	msgs, err := conv.Messages(context.Background())
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestRunStopsOnCancel(t *testing.T) {
	r, _, _ := newREPL(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, r.Run(ctx, strings.NewReader("")))
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit("/quit"))
	assert.True(t, isQuit("  /EXIT "))
	assert.False(t, isQuit("quit"))
}
