package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/lang"
)

type availabilitySet map[backend.Provider]bool

func (a availabilitySet) Has(p backend.Provider) bool { return a[p] }

func newTestTTSRouter(available availabilitySet, excluded ...string) *TTSRouter {
	cfg := &config.RoutingConfig{
		PrimaryTTSLanguages:        []string{"hi", "bn", "ta"},
		EvaluationExcludedBackends: excluded,
	}
	return NewTTSRouter(cfg, backend.ProviderIndicParler, backend.ProviderESpeak, available)
}

func TestTTSRouter_PrimaryMatch(t *testing.T) {
	r := newTestTTSRouter(availabilitySet{
		backend.ProviderIndicParler: true,
		backend.ProviderESpeak:      true,
	})

	d, err := r.Select(lang.Tag{Code: "hi", Confidence: 1})
	assert.NoError(t, err)
	assert.Equal(t, backend.ProviderIndicParler, d.Backend)
	assert.Equal(t, KindPrimaryTTS, d.Kind)
	assert.Equal(t, ReasonPrimaryMatch, d.Reason)
	assert.True(t, d.EvaluationEligible)
}

func TestTTSRouter_FallbackForUnsupportedLanguage(t *testing.T) {
	r := newTestTTSRouter(availabilitySet{
		backend.ProviderIndicParler: true,
		backend.ProviderESpeak:      true,
	})

	d, err := r.Select(lang.Tag{Code: "es", Confidence: 1})
	assert.NoError(t, err)
	assert.Equal(t, backend.ProviderESpeak, d.Backend)
	assert.Equal(t, KindFallbackTTS, d.Kind)
	assert.Equal(t, ReasonFallbackPlatform, d.Reason)

	// Platform-synthesized output never participates in evaluation.
	assert.False(t, d.EvaluationEligible)
}

func TestTTSRouter_FallbackWhenPrimaryAbsent(t *testing.T) {
	r := newTestTTSRouter(availabilitySet{
		backend.ProviderESpeak: true,
	})

	d, err := r.Select(lang.Tag{Code: "hi", Confidence: 1})
	assert.NoError(t, err)
	assert.Equal(t, backend.ProviderESpeak, d.Backend)
	assert.Equal(t, ReasonFallbackPlatform, d.Reason)
}

func TestTTSRouter_ExcludedPrimaryStillRoutes(t *testing.T) {
	r := newTestTTSRouter(availabilitySet{
		backend.ProviderIndicParler: true,
	}, string(backend.ProviderIndicParler))

	d, err := r.Select(lang.Tag{Code: "ta", Confidence: 1})
	assert.NoError(t, err)
	assert.Equal(t, backend.ProviderIndicParler, d.Backend)
	assert.False(t, d.EvaluationEligible)
}

func TestTTSRouter_NoBackendAvailable(t *testing.T) {
	r := newTestTTSRouter(availabilitySet{})

	_, err := r.Select(lang.Tag{Code: "fr", Confidence: 1})
	assert.Error(t, err)

	var noTTS *NoTTSBackendError
	assert.ErrorAs(t, err, &noTTS)
	assert.Equal(t, "fr", noTTS.Language)
	assert.Contains(t, err.Error(), `"fr"`)
}
