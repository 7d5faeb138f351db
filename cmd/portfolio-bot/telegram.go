package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/portfolio-bot/internal/delivery/telegram"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Serve the conversation to one Telegram chat",
	Long: `Run a Telegram bot bound to a single chat: TELEGRAM_CHAT_ID when set,
otherwise the first chat that writes. Other chats are politely refused.`,
	Args: cobra.NoArgs,
	RunE: runTelegram,
}

func runTelegram(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.Telegram.Enabled() {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	bot, err := telegram.NewBotHandler(a.cfg.Telegram.Token, a.cfg.Telegram.ChatID, a.conv, a.kb, logger)
	if err != nil {
		return err
	}
	return bot.Start(ctx)
}
