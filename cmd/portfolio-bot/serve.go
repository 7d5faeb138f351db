package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/portfolio-bot/internal/delivery/telegram"
	"github.com/yourusername/portfolio-bot/internal/delivery/web"
)

var withTelegram bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversation over HTTP and WebSocket",
	Long: `Serve the single conversation over HTTP:

  GET  /api/conversation  messages and the awaiting flag
  POST /api/messages      {"text": "..."}; waits for the reply
  GET  /api/profile       the loaded profile
  GET  /api/ws            live snapshots, inbound {"type":"submit","text":"..."}
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&withTelegram, "telegram", false, "Also run the Telegram bot (needs TELEGRAM_BOT_TOKEN)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var bot *telegram.BotHandler
	if withTelegram {
		if !a.cfg.Telegram.Enabled() {
			return fmt.Errorf("--telegram needs TELEGRAM_BOT_TOKEN")
		}
		bot, err = telegram.NewBotHandler(a.cfg.Telegram.Token, a.cfg.Telegram.ChatID, a.conv, a.kb, logger)
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           web.NewRouter(a.conv, a.kb, logger),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		return runServer(gctx, srv)
	})
	if bot != nil {
		g.Go(func() error {
			return bot.Start(gctx)
		})
	}
	return g.Wait()
}

// runServer serves until ctx ends, then shuts down gracefully
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
