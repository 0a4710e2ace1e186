package service

import (
	"context"
	"io"
	"strings"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/lang"
	"github.com/voxloom/voxloom/internal/model"
)

// NMT is a service abstraction for machine translation.
type NMT struct {
	backends *backend.Registry
}

// NewNMT creates a new NMT service.
func NewNMT(backends *backend.Registry) *NMT {
	return &NMT{backends: backends}
}

// Translate translates text between the given ISO language codes. The NLLB
// tag mapping happens here so callers stay in ISO space.
func (s *NMT) Translate(ctx context.Context, provider backend.Provider, handle *model.Handle, text, srcCode, tgtCode string) (string, error) {
	b, ok := s.backends.Get(provider)
	if !ok {
		return "", backend.ErrNotFound
	}

	modelPath := ""
	if handle != nil {
		modelPath = handle.Path()
	}

	req := &backend.Request{
		ModelPath: modelPath,
		Input:     strings.NewReader(text),
		Parameters: map[string]any{
			"src_lang": lang.NLLBCode(srcCode),
			"tgt_lang": lang.NLLBCode(tgtCode),
		},
	}

	resp, err := b.Infer(ctx, req)
	if err != nil {
		return "", err
	}

	out, err := io.ReadAll(resp.Output)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
