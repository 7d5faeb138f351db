package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

type memoryChatRepository struct {
	mu       sync.RWMutex
	messages []entity.Message
}

// NewMemoryChatRepository in-memory conversation log, lives as long as the process
func NewMemoryChatRepository() repository.ConversationRepository {
	return &memoryChatRepository{
		messages: make([]entity.Message, 0, 16),
	}
}

// Append stores the message at the end of the log
func (m *memoryChatRepository) Append(ctx context.Context, message entity.Message) error {
	if message.Text == "" {
		return fmt.Errorf("message %s has no text", message.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if n := len(m.messages); n > 0 && message.Seq <= m.messages[n-1].Seq {
		return fmt.Errorf("message seq %d is not after %d", message.Seq, m.messages[n-1].Seq)
	}

	m.messages = append(m.messages, message)
	return nil
}

// Messages copy of the log
func (m *memoryChatRepository) Messages(ctx context.Context) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([]entity.Message, len(m.messages))
	copy(copied, m.messages)
	return copied, nil
}

// Last newest message
func (m *memoryChatRepository) Last(ctx context.Context) (entity.Message, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.messages) == 0 {
		return entity.Message{}, false, nil
	}
	return m.messages[len(m.messages)-1], true, nil
}

// Len log size
func (m *memoryChatRepository) Len(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.messages), nil
}
