package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/voxloom/voxloom/internal/lang"
)

// DefaultConfidenceThreshold is used when the config leaves the routing
// threshold at zero. The source material does not pin a value; it stays a
// configuration-surfaced parameter.
const DefaultConfidenceThreshold = 0.5

// DefaultRunLog is the default run record file.
const DefaultRunLog = "evaluation_log.json"

// ApplyDefaults fills unset routing and storage fields in place.
func (c *Config) ApplyDefaults() {
	if c.Routing.ConfidenceThreshold == 0 {
		c.Routing.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if len(c.Routing.SpecializedLanguages) == 0 {
		c.Routing.SpecializedLanguages = lang.IndicCodes()
	}
	if len(c.Routing.PrimaryTTSLanguages) == 0 {
		c.Routing.PrimaryTTSLanguages = lang.IndicCodes()
	}
	if c.Storage.RunLog == "" {
		c.Storage.RunLog = DefaultRunLog
	}
}

// DefaultConfigPath returns the default path for the voxloom config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "voxloom", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "voxloom")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "voxloom")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "voxloom")
		}
		return filepath.Join(home, ".config", "voxloom")
	}
}

// DefaultModelsPath returns the default path for the voxloom models directory.
func DefaultModelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "voxloom", "models")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "voxloom", "models")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "voxloom", "models")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "voxloom", "models")
		}
		return filepath.Join(home, ".cache", "voxloom", "models")
	}
}
