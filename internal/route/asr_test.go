package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/lang"
)

func newTestASRRouter() *ASRRouter {
	cfg := &config.RoutingConfig{
		ConfidenceThreshold:  0.5,
		SpecializedLanguages: []string{"hi", "bn", "ta", "te"},
	}
	return NewASRRouter(cfg, backend.ProviderWhisperCPP, backend.ProviderIndicConformer)
}

func TestASRRouter_Select(t *testing.T) {
	r := newTestASRRouter()

	tests := []struct {
		name        string
		tag         lang.Tag
		wantBackend backend.Provider
		wantKind    BackendKind
		wantReason  Reason
	}{
		{
			name:        "specialized language above threshold",
			tag:         lang.Tag{Code: "hi", Confidence: 0.9},
			wantBackend: backend.ProviderIndicConformer,
			wantKind:    KindSpecializedASR,
			wantReason:  ReasonSpecializedMatch,
		},
		{
			name:        "unsupported language above threshold",
			tag:         lang.Tag{Code: "es", Confidence: 0.95},
			wantBackend: backend.ProviderWhisperCPP,
			wantKind:    KindGeneralASR,
			wantReason:  ReasonFallbackDefault,
		},
		{
			name:        "specialized language below threshold",
			tag:         lang.Tag{Code: "hi", Confidence: 0.3},
			wantBackend: backend.ProviderWhisperCPP,
			wantKind:    KindGeneralASR,
			wantReason:  ReasonLowConfidenceDefault,
		},
		{
			name:        "unknown tag",
			tag:         lang.Unknown(),
			wantBackend: backend.ProviderWhisperCPP,
			wantKind:    KindGeneralASR,
			wantReason:  ReasonLowConfidenceDefault,
		},
		{
			name:        "exactly at threshold counts as confident",
			tag:         lang.Tag{Code: "bn", Confidence: 0.5},
			wantBackend: backend.ProviderIndicConformer,
			wantKind:    KindSpecializedASR,
			wantReason:  ReasonSpecializedMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.Select(tt.tag)
			assert.Equal(t, tt.wantBackend, d.Backend)
			assert.Equal(t, tt.wantKind, d.Kind)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.tag, d.Tag)
			assert.True(t, d.EvaluationEligible)
		})
	}
}

func TestASRRouter_LowConfidenceAlwaysGeneral(t *testing.T) {
	r := newTestASRRouter()

	// Below the threshold the code is irrelevant, specialized ones included.
	for _, code := range []string{"hi", "bn", "ta", "te", "es", "xx", lang.CodeUnknown} {
		d := r.Select(lang.Tag{Code: code, Confidence: 0.49})
		assert.Equal(t, backend.ProviderWhisperCPP, d.Backend, "code %s", code)
		assert.Equal(t, ReasonLowConfidenceDefault, d.Reason, "code %s", code)
	}
}

func TestASRRouter_NoSpecializedBackend(t *testing.T) {
	cfg := &config.RoutingConfig{
		ConfidenceThreshold:  0.5,
		SpecializedLanguages: []string{"hi"},
	}
	r := NewASRRouter(cfg, backend.ProviderWhisperCPP, "")

	d := r.Select(lang.Tag{Code: "hi", Confidence: 0.9})
	assert.Equal(t, backend.ProviderWhisperCPP, d.Backend)
	assert.Equal(t, ReasonFallbackDefault, d.Reason)
}

func TestASRRouter_General(t *testing.T) {
	r := newTestASRRouter()
	assert.Equal(t, backend.ProviderWhisperCPP, r.General())
}
