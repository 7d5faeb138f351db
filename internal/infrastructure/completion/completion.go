// Package completion holds what every remote model adapter shares: the
// request text layout, error normalization and the credential-less adapter.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

// ComposePrompt single request text: instructions, the visitor's line and the reply cue
func ComposePrompt(systemPrompt, userInput, replyCue string) string {
	prompt := fmt.Sprintf("%s\n\nUser: %s", strings.TrimRight(systemPrompt, "\n"), userInput)
	if replyCue != "" {
		prompt += "\n" + replyCue
	}
	return prompt
}

// Guard runs one adapter call. Panics, errors and empty output come back as
// errors wrapping repository.ErrRemoteCallFailed; ErrRemoteUnavailable passes through.
func Guard(provider string, call func() (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%s: %w: panic: %v", provider, repository.ErrRemoteCallFailed, r)
		}
	}()

	text, err = call()
	switch {
	case errors.Is(err, repository.ErrRemoteUnavailable), errors.Is(err, repository.ErrRemoteCallFailed):
		return "", err
	case err != nil:
		return "", fmt.Errorf("%s: %w: %w", provider, repository.ErrRemoteCallFailed, err)
	case strings.TrimSpace(text) == "":
		return "", fmt.Errorf("%s: %w: empty response", provider, repository.ErrRemoteCallFailed)
	}
	return text, nil
}

type unavailable struct{}

// NewUnavailable adapter for a missing credential, never touches the network
func NewUnavailable() repository.CompletionRepository {
	return unavailable{}
}

func (unavailable) Complete(ctx context.Context, systemPrompt, userInput string) (string, error) {
	return "", repository.ErrRemoteUnavailable
}
