package route

import (
	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/lang"
)

// ASRRouter selects the recognition backend for a language tag. Selection is
// total: the general backend covers every language, so routing never fails.
type ASRRouter struct {
	general             backend.Provider
	specialized         backend.Provider
	specializedCodes    map[string]bool
	confidenceThreshold float64
}

// NewASRRouter builds a router from the routing config.
func NewASRRouter(cfg *config.RoutingConfig, general, specialized backend.Provider) *ASRRouter {
	return &ASRRouter{
		general:             general,
		specialized:         specialized,
		specializedCodes:    toSet(cfg.SpecializedLanguages),
		confidenceThreshold: cfg.ConfidenceThreshold,
	}
}

// Select applies the routing policy, first match wins:
//  1. Confidence below threshold → general, regardless of code.
//  2. Specialized backend explicitly supports the code → specialized.
//  3. Otherwise → general.
//
// The unknown code carries zero confidence and never matches the
// specialized set, so it lands on the general backend instead of failing.
func (r *ASRRouter) Select(tag lang.Tag) Decision {
	if tag.Confidence < r.confidenceThreshold {
		return Decision{
			Backend:            r.general,
			Kind:               KindGeneralASR,
			Tag:                tag,
			Reason:             ReasonLowConfidenceDefault,
			EvaluationEligible: true,
		}
	}

	if r.specialized != "" && r.specializedCodes[tag.Code] {
		return Decision{
			Backend:            r.specialized,
			Kind:               KindSpecializedASR,
			Tag:                tag,
			Reason:             ReasonSpecializedMatch,
			EvaluationEligible: true,
		}
	}

	return Decision{
		Backend:            r.general,
		Kind:               KindGeneralASR,
		Tag:                tag,
		Reason:             ReasonFallbackDefault,
		EvaluationEligible: true,
	}
}

// General returns the universal fallback backend.
func (r *ASRRouter) General() backend.Provider {
	return r.general
}
