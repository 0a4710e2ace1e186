// Package indic drives the IndicConformer runner as the language-specialized
// ASR backend for the Indic language set.
package indic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/mapsafe"
)

// Backend implements backend.Backend for the IndicConformer runner.
type Backend struct {
	executor *backend.Executor
	tempDir  string
}

// NewBackend creates a new IndicConformer backend.
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
	return backend.ProviderIndicConformer
}

// Infer transcribes audio in an Indic language.
// Input: WAV audio bytes, resampled by the runner to 16 kHz mono.
// Output: transcript text. The "language" parameter is required; the runner
// decodes CTC by default.
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	language := mapsafe.Get(req.Parameters, "language", "")
	if language == "" {
		return nil, fmt.Errorf("%s: missing required parameter language", b.Provider())
	}

	audioFile := filepath.Join(b.tempDir, fmt.Sprintf("indic_%d.wav", time.Now().UnixNano()))
	defer os.Remove(audioFile)

	audio, err := io.ReadAll(req.Input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := os.WriteFile(audioFile, audio, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	args := []string{
		"--model", req.ModelPath,
		"--audio", audioFile,
		"--language", language,
		"--decoding", mapsafe.Get(req.Parameters, "decoding", "ctc"),
	}

	stdout, stderr, err := b.executor.Execute(ctx, args, nil)
	if err != nil {
		return nil, &backend.InferenceError{Provider: b.Provider(), Stderr: string(stderr), Err: err}
	}

	text := strings.TrimSpace(string(stdout))

	return &backend.Response{
		Output: bytes.NewReader([]byte(text)),
		Metadata: &backend.ResponseMetadata{
			Provider:    b.Provider(),
			Model:       req.ModelPath,
			Timestamp:   time.Now(),
			OutputBytes: int64(len(text)),
			BackendSpecific: map[string]any{
				"language": language,
				"args":     args,
			},
		},
	}, nil
}

// ResolveModelPath finds the conformer checkpoint inside the downloaded
// artifact directory.
func (b *Backend) ResolveModelPath(basePath string) (string, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return "", err
	}
	if info.Mode().IsRegular() {
		return basePath, nil
	}

	var found string
	err = filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found != "" || d.IsDir() {
			return nil
		}
		switch filepath.Ext(d.Name()) {
		case ".nemo", ".onnx", ".safetensors":
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no conformer checkpoint under %s", basePath)
	}
	return found, nil
}

// Close cleans up resources. The runner has none to clean up.
func (b *Backend) Close() error {
	return nil
}
