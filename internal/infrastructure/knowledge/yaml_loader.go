package knowledge

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
	"github.com/yourusername/portfolio-bot/internal/domain/repository"
)

type yamlLoader struct{}

// NewYAMLLoader profile loader for .yaml files
func NewYAMLLoader() repository.KnowledgeLoader {
	return &yamlLoader{}
}

func (y *yamlLoader) LoadProfile(ctx context.Context, filePath string) (entity.Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entity.Profile{}, fmt.Errorf("failed to read yaml file: %w", err)
	}
	return y.LoadProfileFromBytes(ctx, data, filePath)
}

func (y *yamlLoader) LoadProfileFromBytes(ctx context.Context, data []byte, filename string) (entity.Profile, error) {
	var profile entity.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return entity.Profile{}, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return profile, nil
}
