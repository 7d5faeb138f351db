package repository

import (
	"context"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

// KnowledgeLoader reads a subject profile from an external file
type KnowledgeLoader interface {
	// LoadProfile reads the profile stored at filePath
	LoadProfile(ctx context.Context, filePath string) (entity.Profile, error)

	// LoadProfileFromBytes parses an in-memory copy of a profile file
	LoadProfileFromBytes(ctx context.Context, data []byte, filename string) (entity.Profile, error)
}
