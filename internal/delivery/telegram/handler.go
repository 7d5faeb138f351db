package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

// typing status expires after about 5s on the client
const typingInterval = 4 * time.Second

const (
	busyText    = "Still typing, one sec…"
	refusalText = "Sorry, I’m already chatting with someone else here."
	unknownText = "Unknown command. Try /help."
)

// sender the part of tgbotapi.BotAPI the handler needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// BotHandler serves the conversation to exactly one Telegram chat
type BotHandler struct {
	bot    *tgbotapi.BotAPI
	send   sender
	chat   usecase.ChatUseCase
	kb     *entity.KnowledgeBase
	logger *zap.Logger

	mu     sync.Mutex
	chatID int64

	wg sync.WaitGroup
}

// NewBotHandler connects to the Bot API. chatID 0 binds to the first chat that writes.
func NewBotHandler(
	token string,
	chatID int64,
	chat usecase.ChatUseCase,
	kb *entity.KnowledgeBase,
	logger *zap.Logger,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := newBotHandler(bot, chatID, chat, kb, logger)
	h.bot = bot
	return h, nil
}

func newBotHandler(s sender, chatID int64, chat usecase.ChatUseCase, kb *entity.KnowledgeBase, logger *zap.Logger) *BotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotHandler{
		send:   s,
		chat:   chat,
		kb:     kb,
		logger: logger.With(zap.String("delivery", "telegram")),
		chatID: chatID,
	}
}

// Start polls updates until ctx ends, then waits for in-flight handlers
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info("bot started", zap.String("username", h.bot.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			h.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			h.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer h.wg.Done()
				h.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// handleMessage routes one incoming message
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID

	if !h.bind(chatID) {
		h.logger.Debug("message from foreign chat refused", zap.Int64("chat_id", chatID))
		h.sendMessage(chatID, refusalText)
		return
	}

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	if strings.TrimSpace(message.Text) == "" {
		return
	}
	h.handleTextMessage(ctx, chatID, message.Text)
}

// bind reports whether chatID is the served chat, claiming it if none is bound yet
func (h *BotHandler) bind(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.chatID == 0 {
		h.chatID = chatID
		h.logger.Info("bound to chat", zap.Int64("chat_id", chatID))
	}
	return h.chatID == chatID
}

func (h *BotHandler) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.sendMessage(message.Chat.ID, h.welcomeMessage())
	case "help":
		h.sendMessage(message.Chat.ID, h.helpMessage())
	default:
		h.sendMessage(message.Chat.ID, unknownText)
	}
}

// handleTextMessage submits the text and keeps the typing status on until the reply lands
func (h *BotHandler) handleTextMessage(ctx context.Context, chatID int64, text string) {
	turn, err := h.chat.Submit(ctx, text)
	switch {
	case errors.Is(err, usecase.ErrTurnInProgress):
		h.sendMessage(chatID, busyText)
		return
	case errors.Is(err, usecase.ErrEmptyMessage):
		return
	case err != nil:
		h.logger.Error("submit failed", zap.Error(err))
		return
	}

	h.sendTyping(chatID)
	ticker := time.NewTicker(typingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-turn.Done():
			reply, err := turn.Wait(context.Background())
			if err != nil {
				h.logger.Error("reply not saved", zap.Error(err))
			}
			h.sendMessage(chatID, reply.Text)
			return
		case <-ticker.C:
			h.sendTyping(chatID)
		}
	}
}

func (h *BotHandler) welcomeMessage() string {
	if greeting := strings.TrimSpace(h.chat.Greeting()); greeting != "" {
		return greeting
	}
	return fmt.Sprintf("Hi, I’m %s.", h.kb.Nickname())
}

func (h *BotHandler) helpMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat with %s. Ask about:\n", h.kb.Nickname())
	b.WriteString("• skills\n• projects\n• college\n• GitHub\n• contact\n\n")
	b.WriteString("/start greeting\n/help this message")
	return b.String()
}

func (h *BotHandler) sendTyping(chatID int64) {
	if _, err := h.send.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.logger.Debug("typing action failed", zap.Error(err))
	}
}

// sendMessage plain text message
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.send.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
