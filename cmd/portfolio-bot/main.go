package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose       bool
	knowledgeFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-bot",
	Short: "Chat with a personal portfolio, answered in the owner's voice",
	Long: `portfolio-bot answers questions about one person's skills, projects,
education and contact details in a short casual first-person voice.

Replies come from a remote language model when one is configured and from
a built-in keyword responder otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&knowledgeFile, "knowledge", "k", "", "Profile file (.yaml or .xlsx), overrides KNOWLEDGE_FILE")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(telegramCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(promptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
