package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("Be brief.\n", "skills?", "Reply like Aashmit:")
	assert.Equal(t, "Be brief.\n\nUser: skills?\nReply like Aashmit:", got)

	assert.Equal(t, "Be brief.\n\nUser: hi", ComposePrompt("Be brief.", "hi", ""))
}

func TestGuard(t *testing.T) {
	text, err := Guard("test", func() (string, error) { return "hello", nil })
	assert.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = Guard("test", func() (string, error) { return "", errors.New("dial tcp: refused") })
	assert.ErrorIs(t, err, repository.ErrRemoteCallFailed)
	assert.ErrorContains(t, err, "dial tcp: refused")

	_, err = Guard("test", func() (string, error) { return " \n", nil })
	assert.ErrorIs(t, err, repository.ErrRemoteCallFailed)

	_, err = Guard("test", func() (string, error) { panic("nil map") })
	assert.ErrorIs(t, err, repository.ErrRemoteCallFailed)

	_, err = Guard("test", func() (string, error) { return "", repository.ErrRemoteUnavailable })
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
	assert.NotErrorIs(t, err, repository.ErrRemoteCallFailed)
}

func TestUnavailable(t *testing.T) {
	for i := 0; i < 3; i++ {
		_, err := NewUnavailable().Complete(context.Background(), "prompt", "hey")
		assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
	}
}
