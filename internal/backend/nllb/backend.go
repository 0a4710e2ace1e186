// Package nllb drives the NLLB-200 runner as the translation backend.
// Source and target languages are NLLB tags (eng_Latn, hin_Deva, ...).
package nllb

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/mapsafe"
)

// defaultMaxLength bounds the generated sequence length.
const defaultMaxLength = 512

// Backend implements backend.Backend for the NLLB-200 runner.
type Backend struct {
	executor *backend.Executor
}

// NewBackend creates a new NLLB backend.
func NewBackend(binPath string, timeout time.Duration) (*Backend, error) {
	executor, err := backend.NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return &Backend{executor: executor}, nil
}

// Provider returns the backend identifier.
func (b *Backend) Provider() backend.Provider {
	return backend.ProviderNLLB
}

// Infer translates text.
// Input: UTF-8 source text on stdin. Output: translated text.
// Parameters: "src_lang" and "tgt_lang" (NLLB tags, required),
// "max_length" (optional).
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	srcLang := mapsafe.Get(req.Parameters, "src_lang", "")
	tgtLang := mapsafe.Get(req.Parameters, "tgt_lang", "")
	if srcLang == "" || tgtLang == "" {
		return nil, fmt.Errorf("%s: missing required parameters src_lang/tgt_lang", b.Provider())
	}

	args := []string{
		"--model", req.ModelPath,
		"--src-lang", srcLang,
		"--tgt-lang", tgtLang,
		"--max-length", fmt.Sprintf("%d", mapsafe.Get(req.Parameters, "max_length", defaultMaxLength)),
	}

	// The runner reads source text from stdin.
	stdout, stderr, err := b.executor.Execute(ctx, args, req.Input)
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
				"src_lang": srcLang,
				"tgt_lang": tgtLang,
				"args":     args,
			},
		},
	}, nil
}

// Close cleans up resources. The runner has none to clean up.
func (b *Backend) Close() error {
	return nil
}
