// Package source fetches model artifacts from their configured origins into
// the local models directory.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/voxloom/voxloom/internal/config"
)

// Downloader fetches a model into targetDir. It returns the local path and
// whether the model was already present.
type Downloader interface {
	Download(ctx context.Context, modelConfig *config.ModelConfig, targetDir string) (path string, cached bool, err error)
}

// GetDownloader returns the downloader for a source type.
func GetDownloader(_ context.Context, sourceType config.SourceType) (Downloader, error) {
	switch sourceType {
	case config.SourceTypeHuggingFace:
		return &HuggingFaceDownloader{}, nil
	default:
		return nil, fmt.Errorf("unsupported model source type: %s", sourceType)
	}
}

// EnsureModelsDirectory creates the models directory if needed.
func EnsureModelsDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create models directory %s: %w", path, err)
	}
	return nil
}
