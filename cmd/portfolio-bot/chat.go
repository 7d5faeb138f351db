package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/portfolio-bot/internal/delivery/terminal"
)

var noColor bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		repl := terminal.New(a.conv, a.kb, cmd.OutOrStdout(), terminal.Options{
			NoColor: noColor,
			Logger:  logger,
		})
		return repl.Run(ctx, cmd.InOrStdin())
	},
}

func init() {
	chatCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
