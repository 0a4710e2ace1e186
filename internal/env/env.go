package env

import (
	"os"
	"strings"

	"github.com/voxloom/voxloom/internal/envvar"
)

// Environment identifies the runtime environment.
type Environment string

const (
	// Development enables human-readable console logging.
	Development Environment = "development"

	// Production enables structured JSON logging to file.
	Production Environment = "production"
)

// FromEnv resolves the environment from VOXLOOM_ENV.
// Unset or unrecognized values default to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.VoxloomEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
