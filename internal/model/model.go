package model

import (
	"time"

	"github.com/voxloom/voxloom/internal/config"
)

// Type is the type of a model.
type Type string

const (
	// TypeASR is the type of a speech recognition model.
	TypeASR Type = "asr"

	// TypeNMT is the type of a machine translation model.
	TypeNMT Type = "nmt"

	// TypeTTS is the type of a speech synthesis model.
	TypeTTS Type = "tts"
)

// Status is the current loading status of a model.
type Status string

const (
	// StatusUnloaded indicates that the model is not loaded.
	StatusUnloaded Status = "unloaded"

	// StatusLoading indicates that the model is being loaded.
	StatusLoading Status = "loading"

	// StatusLoaded indicates that the model is loaded.
	StatusLoaded Status = "loaded"

	// StatusFailed indicates that the model failed to load.
	StatusFailed Status = "failed"
)

// Handle is a loaded model reference owned by the Registry. Callers borrow it
// for the duration of a call and never copy or retain it past the run.
type Handle struct {
	// ID uniquely identifies the backend + configuration pair.
	ID string `json:"id"`

	// Ref is the opaque loaded-model reference. For CLI-driven backends it
	// is the resolved weights path handed to the binary.
	Ref any `json:"-"`

	// LoadedAt is when the load completed.
	LoadedAt time.Time `json:"loaded_at"`
}

// Path returns the reference as a filesystem path, empty if it is not one.
func (h *Handle) Path() string {
	if p, ok := h.Ref.(string); ok {
		return p
	}
	return ""
}

// Instance is a catalog entry for a configured model: its config, the local
// artifact directory after download, and the load lifecycle status.
type Instance struct {
	Config   *config.ModelConfig `json:"config"`
	LoadedAt *time.Time          `json:"loaded_at,omitempty"`
	ID       string              `json:"id"`
	Path     string              `json:"-"`
	Status   Status              `json:"status"`
	Error    string              `json:"error,omitempty"`
}

// NewInstance creates a new catalog instance.
func NewInstance(cfg *config.ModelConfig, id, path string) *Instance {
	return &Instance{
		ID:     id,
		Path:   path,
		Config: cfg,
		Status: StatusUnloaded,
	}
}

// SetStatus sets the status of the instance.
func (in *Instance) SetStatus(status Status) {
	in.Status = status
	if status == StatusLoaded {
		now := time.Now()
		in.LoadedAt = &now
	}
}

// SetError records a load error on the instance.
func (in *Instance) SetError(err error) {
	in.Error = err.Error()
}
