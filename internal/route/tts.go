package route

import (
	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/lang"
)

// Availability reports whether a backend is usable on this host. The backend
// registry satisfies it.
type Availability interface {
	Has(provider backend.Provider) bool
}

// TTSRouter selects the synthesis backend for a target language tag.
type TTSRouter struct {
	primary      backend.Provider
	fallback     backend.Provider
	primaryCodes map[string]bool
	excluded     map[string]bool
	available    Availability
}

// NewTTSRouter builds a router from the routing config. available reports
// host-side backend presence; the platform fallback may be absent.
func NewTTSRouter(cfg *config.RoutingConfig, primary, fallback backend.Provider, available Availability) *TTSRouter {
	return &TTSRouter{
		primary:      primary,
		fallback:     fallback,
		primaryCodes: toSet(cfg.PrimaryTTSLanguages),
		excluded:     toSet(cfg.EvaluationExcludedBackends),
		available:    available,
	}
}

// Select applies the routing policy:
//  1. Primary backend supports the target code and is present → primary,
//     evaluation-eligible unless the backend is configured as excluded.
//  2. Fallback present → fallback, evaluation-excluded.
//  3. Neither present → *NoTTSBackendError naming the target language.
//
// Callers must propagate the eligibility flag so reporting can omit
// fallback-synthesized output from comparisons.
func (r *TTSRouter) Select(tag lang.Tag) (Decision, error) {
	if r.primaryCodes[tag.Code] && r.has(r.primary) {
		return Decision{
			Backend:            r.primary,
			Kind:               KindPrimaryTTS,
			Tag:                tag,
			Reason:             ReasonPrimaryMatch,
			EvaluationEligible: !r.excluded[string(r.primary)],
		}, nil
	}

	if r.has(r.fallback) {
		return Decision{
			Backend:            r.fallback,
			Kind:               KindFallbackTTS,
			Tag:                tag,
			Reason:             ReasonFallbackPlatform,
			EvaluationEligible: false,
		}, nil
	}

	return Decision{}, &NoTTSBackendError{Language: tag.Code}
}

func (r *TTSRouter) has(p backend.Provider) bool {
	if p == "" {
		return false
	}
	if r.available == nil {
		return true
	}
	return r.available.Has(p)
}
