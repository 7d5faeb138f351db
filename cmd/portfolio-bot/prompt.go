package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/portfolio-bot/config"
	"github.com/yourusername/portfolio-bot/internal/infrastructure/knowledge"
	"github.com/yourusername/portfolio-bot/internal/usecase"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system prompt sent with every remote request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		path := cfg.KnowledgeFile
		if knowledgeFile != "" {
			path = knowledgeFile
		}

		kb, err := knowledge.Load(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("failed to load knowledge base: %w", err)
		}

		b := usecase.NewPromptBuilder(kb)
		fmt.Fprintln(cmd.OutOrStdout(), b.BuildSystemPrompt())
		fmt.Fprintln(cmd.OutOrStdout(), b.ReplyCue())
		return nil
	},
}
