// Package whisper drives the whisper.cpp CLI as the general multilingual
// ASR backend. It covers the whole input language space and doubles as the
// first-pass recognizer when no language hint is available.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/mapsafe"
	"github.com/voxloom/voxloom/internal/xfs"
)

// Backend implements backend.Backend for whisper.cpp.
type Backend struct {
	executor *backend.Executor
	tempDir  string
}

// NewBackend creates a new whisper.cpp backend.
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
	return backend.ProviderWhisperCPP
}

// detectedLangRe matches whisper.cpp's language auto-detection stderr line.
var detectedLangRe = regexp.MustCompile(`auto-detected language:\s*([a-z]{2,3})`)

// Infer transcribes audio.
// Input: WAV audio bytes. Output: transcript text (UTF-8).
// The detected language, when auto-detection ran, is reported in the
// response metadata under "detected_language".
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	// whisper.cpp reads audio from a file, not stdin.
	audioFile := filepath.Join(b.tempDir, fmt.Sprintf("whisper_%d.wav", time.Now().UnixNano()))
	defer os.Remove(audioFile)

	audio, err := io.ReadAll(req.Input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := os.WriteFile(audioFile, audio, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	args := b.buildArgs(req, audioFile)

	stdout, stderr, err := b.executor.Execute(ctx, args, nil)
	if err != nil {
		return nil, &backend.InferenceError{Provider: b.Provider(), Stderr: string(stderr), Err: err}
	}

	text := strings.TrimSpace(string(stdout))

	detected := ""
	if m := detectedLangRe.FindSubmatch(stderr); m != nil {
		detected = string(m[1])
	}

	return &backend.Response{
		Output: bytes.NewReader([]byte(text)),
		Metadata: &backend.ResponseMetadata{
			Provider:    b.Provider(),
			Model:       req.ModelPath,
			Timestamp:   time.Now(),
			OutputBytes: int64(len(text)),
			BackendSpecific: map[string]any{
				"detected_language": detected,
				"args":              args,
			},
		},
	}, nil
}

// buildArgs builds whisper.cpp command-line arguments.
func (b *Backend) buildArgs(req *backend.Request, audioFile string) []string {
	args := []string{
		"--model", req.ModelPath,
		"--file", audioFile,
		"--no-timestamps",
	}

	p := req.Parameters

	args = append(args, "--language", mapsafe.Get(p, "language", "auto"))

	if v := mapsafe.Get(p, "threads", 0); v > 0 {
		args = append(args, "--threads", fmt.Sprintf("%d", v))
	}

	if v := mapsafe.Get(p, "beam_size", 0); v > 0 {
		args = append(args, "--beam-size", fmt.Sprintf("%d", v))
	}

	return args
}

// ResolveModelPath finds the ggml weights file inside the downloaded
// artifact directory.
func (b *Backend) ResolveModelPath(basePath string) (string, error) {
	if xfs.IsRegularFile(basePath) {
		return basePath, nil
	}
	if _, err := os.Stat(basePath); err != nil {
		return "", err
	}

	var found string
	err := filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found == "" && !d.IsDir() && strings.HasSuffix(d.Name(), ".bin") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no ggml .bin weights under %s", basePath)
	}
	return found, nil
}

// Close cleans up resources. whisper.cpp has none to clean up.
func (b *Backend) Close() error {
	return nil
}
