package ark

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

type fakeChatModel struct {
	reply    *schema.Message
	err      error
	panicVal any
	input    []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	return f.reply, f.err
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func TestNewArkClientWithoutKey(t *testing.T) {
	c, err := NewArkClient(context.Background(), Options{Model: "doubao"})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, repository.ErrRemoteUnavailable)
}

func TestNewArkClientWithoutModel(t *testing.T) {
	_, err := NewArkClient(context.Background(), Options{APIKey: "key"})
	assert.Error(t, err)
}

func TestCompleteSendsComposedPrompt(t *testing.T) {
	fake := &fakeChatModel{reply: schema.AssistantMessage("  RNSIT, Info Science Engg. ", nil)}
	c := NewWithModel(fake, "Reply like Aashmit:", nil)

	text, err := c.Complete(context.Background(), "persona", "college?")
	require.NoError(t, err)
	assert.Equal(t, "RNSIT, Info Science Engg.", text)

	require.Len(t, fake.input, 1)
	assert.Equal(t, schema.User, fake.input[0].Role)
	assert.Equal(t, "persona\n\nUser: college?\nReply like Aashmit:", fake.input[0].Content)
}

func TestCompleteFailures(t *testing.T) {
	tests := map[string]*fakeChatModel{
		"error":        {err: errors.New("rate limited")},
		"nil message":  {},
		"empty output": {reply: schema.AssistantMessage(" \n", nil)},
		"panic":        {panicVal: "sdk bug"},
	}

	for name, fake := range tests {
		t.Run(name, func(t *testing.T) {
			text, err := NewWithModel(fake, "", nil).Complete(context.Background(), "persona", "hi")
			assert.Empty(t, text)
			assert.ErrorIs(t, err, repository.ErrRemoteCallFailed)
		})
	}
}

func TestCompleteSendsOneRequestOnServerError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": {"code": "InternalServiceError", "message": "boom", "type": "server_error"}}`)
	}))
	defer srv.Close()

	c, err := NewArkClient(context.Background(), Options{
		APIKey:  "test-key",
		Model:   "doubao-pro",
		BaseURL: srv.URL,
		Region:  "cn-beijing",
	})
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "persona", "skills?")
	assert.Empty(t, text)
	assert.ErrorIs(t, err, repository.ErrRemoteCallFailed)
	assert.Equal(t, int32(1), requests.Load())
}
