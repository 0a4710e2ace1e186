package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/model"
)

// capturingBackend records the last request and answers with fixed output.
type capturingBackend struct {
	provider backend.Provider
	lastReq  *backend.Request
	output   string
	meta     map[string]any
}

func (c *capturingBackend) Provider() backend.Provider { return c.provider }
func (c *capturingBackend) Close() error               { return nil }

func (c *capturingBackend) Infer(_ context.Context, req *backend.Request) (*backend.Response, error) {
	c.lastReq = req
	return &backend.Response{
		Output:   strings.NewReader(c.output),
		Metadata: &backend.ResponseMetadata{BackendSpecific: c.meta},
	}, nil
}

func TestASR_Transcribe(t *testing.T) {
	b := &capturingBackend{
		provider: backend.ProviderWhisperCPP,
		output:   "hello world",
		meta:     map[string]any{"detected_language": "en"},
	}
	reg := backend.NewRegistry()
	reg.Register(b)

	asr := NewASR(reg)
	handle := &model.Handle{ID: "whisper", Ref: "/models/ggml.bin"}

	text, detected, err := asr.Transcribe(context.Background(), backend.ProviderWhisperCPP, handle, []byte("wav"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, "en", detected)
	assert.Equal(t, "/models/ggml.bin", b.lastReq.ModelPath)
}

func TestASR_TranscribeNilHandle(t *testing.T) {
	b := &capturingBackend{provider: backend.ProviderIndicConformer, output: "नमस्ते"}
	reg := backend.NewRegistry()
	reg.Register(b)

	asr := NewASR(reg)

	// A backend without an assigned model gets a nil handle; the request
	// goes out with an empty model path instead of panicking.
	text, _, err := asr.Transcribe(context.Background(), backend.ProviderIndicConformer, nil, []byte("wav"), map[string]any{"language": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", text)
	assert.Empty(t, b.lastReq.ModelPath)
}

func TestASR_TranscribeUnknownBackend(t *testing.T) {
	asr := NewASR(backend.NewRegistry())

	_, _, err := asr.Transcribe(context.Background(), backend.ProviderWhisperCPP, nil, []byte("wav"), nil)
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestNMT_TranslateNilHandle(t *testing.T) {
	b := &capturingBackend{provider: backend.ProviderNLLB, output: "hello"}
	reg := backend.NewRegistry()
	reg.Register(b)

	nmt := NewNMT(reg)

	text, err := nmt.Translate(context.Background(), backend.ProviderNLLB, nil, "नमस्ते", "hi", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Empty(t, b.lastReq.ModelPath)

	in, err := io.ReadAll(b.lastReq.Input)
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", string(in))
	assert.Equal(t, "hin_Deva", b.lastReq.Parameters["src_lang"])
	assert.Equal(t, "eng_Latn", b.lastReq.Parameters["tgt_lang"])
}
