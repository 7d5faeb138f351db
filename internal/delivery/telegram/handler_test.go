package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/knowledge"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/storage"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sent struct {
	chatID int64
	text   string
}

type fakeSender struct {
	mu       sync.Mutex
	messages []sent
	actions  []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, sent{chatID: msg.ChatID, text: msg.Text})
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if action, ok := c.(tgbotapi.ChatActionConfig); ok {
		f.actions = append(f.actions, action.Action)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) sent() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sent(nil), f.messages...)
}

type gatedCompleter struct {
	release chan struct{}
}

func (g *gatedCompleter) Complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	<-g.release
	return "", repository.ErrRemoteCallFailed
}

func newHandler(t *testing.T, chatID int64, ai repository.CompletionRepository) (*BotHandler, *fakeSender, *usecase.Conversation) {
	t.Helper()
	kb := entity.NewKnowledgeBase(knowledge.Seed())
	conv, err := usecase.NewChatUseCase(ai, storage.NewMemoryChatRepository(), kb, nil)
	require.NoError(t, err)

	fs := &fakeSender{}
	return newBotHandler(fs, chatID, conv, kb, nil), fs, conv
}

func textMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func commandMessage(chatID int64, command string) *tgbotapi.Message {
	text := "/" + command
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}
}

func TestCommands(t *testing.T) {
	h, fs, conv := newHandler(t, 0, nil)
	ctx := context.Background()

	h.handleMessage(ctx, commandMessage(7, "start"))
	h.handleMessage(ctx, commandMessage(7, "help"))
	h.handleMessage(ctx, commandMessage(7, "admin"))

	out := fs.sent()
	require.Len(t, out, 3)
	assert.Equal(t, conv.Greeting(), out[0].text)
	assert.Contains(t, out[1].text, "skills")
	assert.Contains(t, out[1].text, "/help")
	assert.Equal(t, unknownText, out[2].text)
	for _, m := range out {
		assert.Equal(t, int64(7), m.chatID)
	}

	msgs, err := conv.Messages(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 1, "commands are not conversation turns")
}

// greetingOverride answers Greeting itself and delegates the rest
type greetingOverride struct {
	usecase.ChatUseCase
	greeting string
}

func (g greetingOverride) Greeting() string {
	return g.greeting
}

func TestStartUsesConversationGreeting(t *testing.T) {
	kb := entity.NewKnowledgeBase(knowledge.Seed())
	conv, err := usecase.NewChatUseCase(nil, storage.NewMemoryChatRepository(), kb, nil)
	require.NoError(t, err)

	tests := map[string]struct {
		greeting string
		want     string
	}{
		"conversation greeting": {greeting: "Yo, Aashmit here.", want: "Yo, Aashmit here."},
		"empty greeting":        {greeting: "  ", want: "Hi, I’m " + kb.Nickname() + "."},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fs := &fakeSender{}
			h := newBotHandler(fs, 0, greetingOverride{ChatUseCase: conv, greeting: tt.greeting}, kb, nil)

			h.handleMessage(context.Background(), commandMessage(3, "start"))

			out := fs.sent()
			require.Len(t, out, 1)
			assert.Equal(t, tt.want, out[0].text)
		})
	}
}

func TestTextMessageGetsReply(t *testing.T) {
	h, fs, conv := newHandler(t, 0, nil)

	h.handleMessage(context.Background(), textMessage(7, "which college?"))

	out := fs.sent()
	require.Len(t, out, 1)
	assert.Equal(t, "Hey 👋", out[0].text, "“which” contains “hi”")
	assert.Equal(t, []string{tgbotapi.ChatTyping}, fs.actions)
	assert.False(t, conv.AwaitingResponse())
}

func TestBlankTextIgnored(t *testing.T) {
	h, fs, _ := newHandler(t, 0, nil)
	h.handleMessage(context.Background(), textMessage(7, "   "))
	assert.Empty(t, fs.sent())
}

func TestFirstChatIsBound(t *testing.T) {
	h, fs, _ := newHandler(t, 0, nil)
	ctx := context.Background()

	h.handleMessage(ctx, textMessage(7, "github"))
	h.handleMessage(ctx, textMessage(8, "github"))

	out := fs.sent()
	require.Len(t, out, 2)
	assert.Equal(t, int64(7), out[0].chatID)
	assert.True(t, strings.HasPrefix(out[0].text, "Check my GitHub"))
	assert.Equal(t, sent{chatID: 8, text: refusalText}, out[1])
}

func TestConfiguredChatOnly(t *testing.T) {
	h, fs, conv := newHandler(t, 42, nil)

	h.handleMessage(context.Background(), textMessage(7, "hello"))

	assert.Equal(t, []sent{{chatID: 7, text: refusalText}}, fs.sent())
	msgs, err := conv.Messages(context.Background())
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestMessageWhileTyping(t *testing.T) {
	gate := &gatedCompleter{release: make(chan struct{})}
	h, fs, conv := newHandler(t, 0, gate)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.handleMessage(ctx, textMessage(7, "projects?"))
	}()

	require.Eventually(t, conv.AwaitingResponse, 5*time.Second, 5*time.Millisecond)

	h.handleMessage(ctx, textMessage(7, "hello??"))
	close(gate.release)
	<-done

	out := fs.sent()
	require.Len(t, out, 2)
	assert.Equal(t, busyText, out[0].text)
	assert.Contains(t, out[1].text, "GitHub’s got them")
}
