package repository

import (
	"context"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

// ConversationRepository append-only message log of the single session
type ConversationRepository interface {
	// Append stores message at the end of the log
	Append(ctx context.Context, message entity.Message) error

	// Messages returns a copy of the whole log in insertion order
	Messages(ctx context.Context) ([]entity.Message, error)

	// Last returns the newest message, false when the log is empty
	Last(ctx context.Context) (entity.Message, bool, error)

	// Len number of stored messages
	Len(ctx context.Context) (int, error)
}
