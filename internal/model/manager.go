package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/config/source"
	"github.com/voxloom/voxloom/internal/envvar"
	"github.com/voxloom/voxloom/internal/xfs"
)

// Locator resolves the actual weights file inside a downloaded artifact
// directory. Backends that know their file layout implement it; a nil locator
// means the artifact directory itself is the model path.
type Locator func(basePath string) (string, error)

// Manager owns the model catalog: which models the config declares, where
// their artifacts live locally, and their load lifecycle. Loading itself goes
// through the injected Registry so handles stay unique per id.
type Manager struct {
	registry *Registry
	mu       sync.RWMutex
	catalog  map[string]*Instance
}

// NewManager creates a Manager backed by the given registry.
func NewManager(registry *Registry) *Manager {
	return &Manager{
		registry: registry,
		catalog:  make(map[string]*Instance),
	}
}

// Registry returns the handle registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Add inserts a catalog entry directly, bypassing download. Used for models
// already provisioned on local disk.
func (m *Manager) Add(in *Instance) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog[in.ID] = in
}

// Instance returns the catalog entry for a model id.
func (m *Manager) Instance(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	in, ok := m.catalog[id]
	return in, ok
}

// List returns all catalog instances.
func (m *Manager) List() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*Instance, 0, len(m.catalog))
	for _, in := range m.catalog {
		instances = append(instances, in)
	}
	return instances
}

// SyncFromConfig downloads the models the services section assigns and
// rebuilds the catalog. Entries no longer referenced are dropped and their
// handles evicted; loaded handles of surviving models are left alone.
func (m *Manager) SyncFromConfig(ctx context.Context, cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	modelsPath := resolveModelsPath(cfg)
	if err := source.EnsureModelsDirectory(modelsPath); err != nil {
		return fmt.Errorf("failed to prepare models directory %s: %w", modelsPath, err)
	}

	assigned := make(map[string]bool)
	for _, id := range cfg.AssignedModels() {
		assigned[id] = true
	}

	synced := make(map[string]bool)
	for modelID := range assigned {
		modelConfig, ok := cfg.Models[modelID]
		if !ok {
			slog.Warn("Model not found in config", "model_id", modelID)
			continue
		}

		modelSource, err := modelConfig.GetSource()
		if err != nil {
			return fmt.Errorf("failed to get model source for %s: %w", modelID, err)
		}

		downloader, err := source.GetDownloader(ctx, modelSource.Type())
		if err != nil {
			return fmt.Errorf("failed to get downloader for %s: %w", modelID, err)
		}

		downloadPath, cached, err := downloader.Download(ctx, &modelConfig, modelsPath)
		if err != nil {
			return fmt.Errorf("failed to download model %s into %s: %w", modelID, modelsPath, err)
		}

		if existing, ok := m.catalog[modelID]; ok && existing.Path == downloadPath {
			synced[modelID] = true
			continue
		}

		m.catalog[modelID] = NewInstance(&modelConfig, modelID, downloadPath)
		synced[modelID] = true

		slog.Info("Model synced into catalog", "model_id", modelID, "path", downloadPath, "cached", cached)
	}

	for id := range m.catalog {
		if !synced[id] {
			delete(m.catalog, id)
			m.registry.Evict(id)
			slog.Info("Model removed from catalog", "model_id", id)
		}
	}

	return nil
}

// Loader builds the registry loader for a model id. Loading a CLI-driven
// model means resolving the weights file the backend binary will read; the
// resolved path is the handle's opaque reference.
func (m *Manager) Loader(id string, locate Locator) LoaderFunc {
	return func(_ context.Context) (any, error) {
		m.mu.RLock()
		in, ok := m.catalog[id]
		m.mu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}

		in.SetStatus(StatusLoading)

		path := in.Path
		if locate != nil {
			resolved, err := locate(in.Path)
			if err != nil {
				in.SetStatus(StatusFailed)
				in.SetError(err)
				return nil, err
			}
			path = resolved
		}

		if _, err := os.Stat(path); err != nil {
			err = fmt.Errorf("model weights unavailable: %w", err)
			in.SetStatus(StatusFailed)
			in.SetError(err)
			return nil, err
		}

		in.SetStatus(StatusLoaded)
		return path, nil
	}
}

// resolveModelsPath returns the path to the models directory.
// Precedence:
// 1. VOXLOOM_MODELS_PATH environment variable.
// 2. ModelsDir field in the config.
// 3. Default models path.
func resolveModelsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.VoxloomModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(config.DefaultModelsPath())
}
