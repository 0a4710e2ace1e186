// Package espeak drives the host espeak-ng binary as the platform fallback
// TTS backend. Its output is excluded from evaluation; it exists so
// synthesis never lacks a backend for non-Indic targets.
package espeak

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/mapsafe"
)

// defaultRate is the speaking rate in words per minute.
const defaultRate = 180

// voices maps language codes to espeak-ng voice names. Unmapped codes fall
// back to English.
var voices = map[string]string{
	"en": "en-us",
	"es": "es",
	"fr": "fr-fr",
	"de": "de",
	"pt": "pt-br",
	"ru": "ru",
	"ja": "ja",
	"zh": "cmn",
	"ar": "ar",
}

// Backend implements backend.Backend for espeak-ng.
type Backend struct {
	executor *backend.Executor
	tempDir  string
}

// NewBackend creates a new espeak-ng backend.
func NewBackend(binPath string, timeout time.Duration) (*Backend, error) {
	executor, err := backend.NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return &Backend{
		executor: executor,
		tempDir:  os.TempDir(),
	}, nil
}

// Provider returns the backend identifier.
func (b *Backend) Provider() backend.Provider {
	return backend.ProviderESpeak
}

// VoiceFor returns the espeak-ng voice for a language code.
func VoiceFor(code string) string {
	if v, ok := voices[code]; ok {
		return v
	}
	return voices["en"]
}

// Infer synthesizes speech from text.
// Input: text bytes on stdin. Output: WAV audio bytes.
// Parameters: "language" (code, voice-mapped), "rate" (words per minute).
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	outputFile := filepath.Join(b.tempDir, fmt.Sprintf("espeak_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outputFile)

	args := []string{
		"-v", VoiceFor(mapsafe.Get(req.Parameters, "language", "en")),
		"-s", fmt.Sprintf("%d", mapsafe.Get(req.Parameters, "rate", defaultRate)),
		"-w", outputFile,
		"--stdin",
	}

	_, stderr, err := b.executor.Execute(ctx, args, req.Input)
	if err != nil {
		return nil, &backend.InferenceError{Provider: b.Provider(), Stderr: string(stderr), Err: err}
	}

	audioData, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	return &backend.Response{
		Output: bytes.NewReader(audioData),
		Metadata: &backend.ResponseMetadata{
			Provider:    b.Provider(),
			Model:       "platform",
			Timestamp:   time.Now(),
			OutputBytes: int64(len(audioData)),
			BackendSpecific: map[string]any{
				"args": args,
			},
		},
	}, nil
}

// Close cleans up resources. espeak-ng has none to clean up.
func (b *Backend) Close() error {
	return nil
}
