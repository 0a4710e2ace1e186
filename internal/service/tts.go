package service

import (
	"context"
	"io"
	"strings"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/model"
)

// TTS is a service abstraction for speech synthesis.
type TTS struct {
	backends *backend.Registry
}

// NewTTS creates a new TTS service.
func NewTTS(backends *backend.Registry) *TTS {
	return &TTS{backends: backends}
}

// Synthesize renders text as WAV audio with the given backend. handle may be
// nil for backends that need no model (platform fallback).
func (s *TTS) Synthesize(ctx context.Context, provider backend.Provider, handle *model.Handle, text, langCode string) ([]byte, error) {
	b, ok := s.backends.Get(provider)
	if !ok {
		return nil, backend.ErrNotFound
	}

	modelPath := ""
	if handle != nil {
		modelPath = handle.Path()
	}

	req := &backend.Request{
		ModelPath: modelPath,
		Input:     strings.NewReader(text),
		Parameters: map[string]any{
			"language": langCode,
		},
	}

	resp, err := b.Infer(ctx, req)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(resp.Output)
}
