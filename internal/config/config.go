package config

import (
	"errors"
)

// SourceType represents the type of model source.
type SourceType string

const (
	// SourceTypeHuggingFace represents a Hugging Face model repository source.
	SourceTypeHuggingFace SourceType = "huggingface"
)

// Config holds the main configuration for the pipeline.
type Config struct {
	Version  string                   `json:"version"           yaml:"version"`
	Storage  StorageConfig            `json:"storage,omitempty" yaml:"storage,omitempty"`
	Routing  RoutingConfig            `json:"routing"           yaml:"routing"`
	Models   map[string]ModelConfig   `json:"models"            yaml:"models"`
	Backends map[string]BackendConfig `json:"backends"          yaml:"backends"`
	Services ServicesConfig           `json:"services"          yaml:"services"`
}

// StorageConfig holds configuration for model caching and run logging.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
	RunLog    string `json:"run_log,omitempty"    yaml:"run_log,omitempty"`
}

// RoutingConfig is the decision surface of the ASR and TTS routers.
type RoutingConfig struct {
	// ConfidenceThreshold is the language-identification confidence below
	// which ASR routing ignores the detected code. In [0,1].
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`

	// SpecializedLanguages is the language set the specialized ASR backend
	// explicitly supports. Empty means the default Indic set.
	SpecializedLanguages []string `json:"specialized_languages,omitempty" yaml:"specialized_languages,omitempty"`

	// PrimaryTTSLanguages is the language set the primary neural TTS backend
	// supports. Empty means the default Indic set.
	PrimaryTTSLanguages []string `json:"primary_tts_languages,omitempty" yaml:"primary_tts_languages,omitempty"`

	// EnableWarmup eagerly loads the configured models before the first
	// timed run, removing first-call latency from phase timings.
	EnableWarmup bool `json:"enable_warmup" yaml:"enable_warmup"`

	// EvaluationExcludedBackends lists backend identifiers whose output is
	// excluded from quality/latency comparisons.
	EvaluationExcludedBackends []string `json:"evaluation_excluded_backends,omitempty" yaml:"evaluation_excluded_backends,omitempty"`
}

// ModelConfig holds configuration for a specific model.
type ModelConfig struct {
	Source  SourceConfig `json:"source"  yaml:"source"`
	Type    string       `json:"type"    yaml:"type"`
	Backend string       `json:"backend" yaml:"backend"`
	Tags    []string     `json:"tags"    yaml:"tags"`
	Order   int          `json:"order"   yaml:"order"`
}

// BackendConfig holds the host-side configuration of one backend binary.
type BackendConfig struct {
	Bin            string `json:"bin"                       yaml:"bin"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// SourceConfig wraps optional sources (only one should be set).
type SourceConfig struct {
	HuggingFace *HuggingFaceSource `json:"huggingface,omitempty" yaml:"huggingface,omitempty"`
}

// ServicesConfig assigns models to the pipeline stages.
type ServicesConfig struct {
	ASR ASRAssignment `json:"asr" yaml:"asr"`
	NMT NMTAssignment `json:"nmt" yaml:"nmt"`
	TTS TTSAssignment `json:"tts" yaml:"tts"`
}

// ASRAssignment names the general and specialized recognition models.
type ASRAssignment struct {
	General     string `json:"general"               yaml:"general"`
	Specialized string `json:"specialized,omitempty" yaml:"specialized,omitempty"`
}

// NMTAssignment names the translation model.
type NMTAssignment struct {
	Model string `json:"model" yaml:"model"`
}

// TTSAssignment names the primary synthesis model. The platform fallback
// needs no model, only its backend binary.
type TTSAssignment struct {
	Primary string `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// AssignedModels returns every model ID referenced by the services section.
func (c *Config) AssignedModels() []string {
	var ids []string
	for _, id := range []string{
		c.Services.ASR.General,
		c.Services.ASR.Specialized,
		c.Services.NMT.Model,
		c.Services.TTS.Primary,
	} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// -------------------------
// Source definitions
// -------------------------

// ModelSource represents a source for a model.
type ModelSource interface {
	Type() SourceType
}

// HuggingFaceSource represents a Hugging Face model repository source.
type HuggingFaceSource struct {
	Repo          string   `json:"repo"                     yaml:"repo"`
	Revision      string   `json:"revision,omitempty"       yaml:"revision,omitempty"`
	RepoType      string   `json:"repo_type,omitempty"      yaml:"repo_type,omitempty"`
	Token         string   `json:"token,omitempty"          yaml:"token,omitempty"`
	Include       []string `json:"include,omitempty"        yaml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"        yaml:"exclude,omitempty"`
	MaxWorkers    int      `json:"max_workers,omitempty"    yaml:"max_workers,omitempty"`
	ForceDownload bool     `json:"force_download,omitempty" yaml:"force_download,omitempty"`
}

// Type returns the Hugging Face source type.
func (h HuggingFaceSource) Type() SourceType {
	return SourceTypeHuggingFace
}

// GetSource returns the active source for the model.
func (m *ModelConfig) GetSource() (ModelSource, error) {
	if m.Source.HuggingFace != nil {
		return *m.Source.HuggingFace, nil
	}

	return nil, errors.New("no source configured for model")
}

// SetHuggingFaceSource sets the Hugging Face source.
func (m *ModelConfig) SetHuggingFaceSource(source HuggingFaceSource) {
	m.Source.HuggingFace = &source
}
