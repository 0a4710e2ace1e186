package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxloom/voxloom/internal/lang"
)

const schemaPath = "../../voxloom.v1.schema.json"

const validConfig = `
version: "1"

storage:
  run_log: custom_log.json

routing:
  confidence_threshold: 0.7
  specialized_languages: [hi, te]
  enable_warmup: true
  evaluation_excluded_backends: [espeak-ng]

models:
  whisper-large-v3:
    source:
      huggingface:
        repo: ggerganov/whisper.cpp
        include: [ggml-large-v3.bin]
    type: asr
    backend: whisper.cpp
  nllb-200:
    source:
      huggingface:
        repo: facebook/nllb-200-distilled-600M
    type: nmt
    backend: nllb

backends:
  whisper.cpp:
    bin: /usr/local/bin/whisper-cli
    timeout_seconds: 120
  nllb:
    bin: /usr/local/bin/nllb-translate

services:
  asr:
    general: whisper-large-v3
  nmt:
    model: nllb-200
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	cfg, err := LoadAndValidate(writeConfig(t, validConfig), schemaPath)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 0.7, cfg.Routing.ConfidenceThreshold)
	assert.Equal(t, []string{"hi", "te"}, cfg.Routing.SpecializedLanguages)
	assert.True(t, cfg.Routing.EnableWarmup)
	assert.Equal(t, "custom_log.json", cfg.Storage.RunLog)
	assert.Equal(t, "whisper-large-v3", cfg.Services.ASR.General)
	assert.Equal(t, 120, cfg.Backends["whisper.cpp"].TimeoutSeconds)

	// Unset routing fields take defaults.
	assert.ElementsMatch(t, lang.IndicCodes(), cfg.Routing.PrimaryTTSLanguages)
}

func TestLoadAndValidate_AppliesThresholdDefault(t *testing.T) {
	content := validConfig
	cfg, err := LoadAndValidate(writeConfig(t, content), schemaPath)
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Routing.ConfidenceThreshold)

	minimal := `
version: "1"
models:
  m1:
    source:
      huggingface:
        repo: org/repo
    type: asr
    backend: whisper.cpp
backends:
  whisper.cpp:
    bin: /bin/true
services:
  asr:
    general: m1
  nmt:
    model: m1
`
	cfg, err = LoadAndValidate(writeConfig(t, minimal), schemaPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfidenceThreshold, cfg.Routing.ConfidenceThreshold)
	assert.Equal(t, DefaultRunLog, cfg.Storage.RunLog)
}

func TestLoadAndValidate_RejectsUnknownModelReference(t *testing.T) {
	content := `
version: "1"
models:
  m1:
    source:
      huggingface:
        repo: org/repo
    type: asr
    backend: whisper.cpp
backends:
  whisper.cpp:
    bin: /bin/true
services:
  asr:
    general: missing-model
  nmt:
    model: m1
`
	_, err := LoadAndValidate(writeConfig(t, content), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-model")
}

func TestLoadAndValidate_RejectsBadThreshold(t *testing.T) {
	content := `
version: "1"
routing:
  confidence_threshold: 1.5
models:
  m1:
    source:
      huggingface:
        repo: org/repo
    type: asr
    backend: whisper.cpp
backends:
  whisper.cpp:
    bin: /bin/true
services:
  asr:
    general: m1
  nmt:
    model: m1
`
	_, err := LoadAndValidate(writeConfig(t, content), schemaPath)
	require.Error(t, err)
}

func TestLoadAndValidate_RejectsInvalidYAML(t *testing.T) {
	_, err := LoadAndValidate(writeConfig(t, "version: [unclosed"), schemaPath)
	require.Error(t, err)
}

func TestLoadAndValidate_RejectsSchemaViolation(t *testing.T) {
	// Missing the required services section entirely.
	content := `
version: "1"
models:
  m1:
    source:
      huggingface:
        repo: org/repo
    type: asr
    backend: whisper.cpp
backends:
  whisper.cpp:
    bin: /bin/true
`
	_, err := LoadAndValidate(writeConfig(t, content), schemaPath)
	require.Error(t, err)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "absent.yaml"), schemaPath)
	require.Error(t, err)
}
