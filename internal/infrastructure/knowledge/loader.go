package knowledge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported knowledge file format")
	ErrMissingName       = errors.New("profile name is required")
)

// LoaderFor picks a loader by file extension
func LoaderFor(filePath string) (repository.KnowledgeLoader, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAMLLoader(), nil
	case ".xlsx":
		return NewExcelLoader(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
}

// Load builds the knowledge base. An empty path means the built-in Seed.
func Load(ctx context.Context, filePath string) (*entity.KnowledgeBase, error) {
	if filePath == "" {
		return entity.NewKnowledgeBase(Seed()), nil
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("knowledge file: %w", err)
	}

	loader, err := LoaderFor(filePath)
	if err != nil {
		return nil, err
	}

	profile, err := loader.LoadProfile(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if err := Validate(profile); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	return entity.NewKnowledgeBase(profile), nil
}

// Validate minimal sanity checks on a loaded profile
func Validate(p entity.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	for i, g := range p.Skills {
		if strings.TrimSpace(g.Category) == "" {
			return fmt.Errorf("skill group %d has no category", i)
		}
	}
	for i, proj := range p.Projects {
		if strings.TrimSpace(proj.Name) == "" {
			return fmt.Errorf("project %d has no name", i)
		}
	}
	return nil
}
