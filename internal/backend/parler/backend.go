// Package parler drives the Indic-Parler runner as the primary neural TTS
// backend for the Indic language set.
package parler

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

// defaultDescription steers the synthesized voice.
const defaultDescription = "A calm voice with natural pace, clarity and stability."

// Backend implements backend.Backend for Indic-Parler TTS.
type Backend struct {
	executor *backend.Executor
	tempDir  string
}

// NewBackend creates a new Indic-Parler backend.
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
	return backend.ProviderIndicParler
}

// Infer synthesizes speech from text.
// Input: text bytes on stdin. Output: WAV audio bytes.
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	// The runner writes audio to a file, so a temp file is used and read back.
	outputFile := filepath.Join(b.tempDir, fmt.Sprintf("parler_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outputFile)

	args := []string{
		"--model", req.ModelPath,
		"--description", mapsafe.Get(req.Parameters, "description", defaultDescription),
		"--output_file", outputFile,
	}

	// The runner reads the prompt text from stdin.
	stdout, stderr, err := b.executor.Execute(ctx, args, req.Input)
	if err != nil {
		return nil, &backend.InferenceError{Provider: b.Provider(), Stderr: string(stderr), Err: err}
	}

	audioData, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	if len(audioData) == 0 {
		return nil, &backend.InferenceError{Provider: b.Provider(), Stderr: string(stderr), Err: fmt.Errorf("empty waveform generated")}
	}

	return &backend.Response{
		Output: bytes.NewReader(audioData),
		Metadata: &backend.ResponseMetadata{
			Provider:    b.Provider(),
			Model:       req.ModelPath,
			Timestamp:   time.Now(),
			OutputBytes: int64(len(audioData)),
			BackendSpecific: map[string]any{
				"stdout": string(stdout),
				"args":   args,
			},
		},
	}, nil
}

// Close cleans up resources. The runner has none to clean up.
func (b *Backend) Close() error {
	return nil
}
