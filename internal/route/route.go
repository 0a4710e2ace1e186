// Package route selects concrete backends for the recognition and synthesis
// stages. Routers are pure decision tables over capability sets; every choice
// is returned as an immutable Decision attached to the run record.
package route

import (
	"fmt"

	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/lang"
)

// BackendKind is the routing role of a backend.
type BackendKind string

const (
	// KindGeneralASR is the multilingual recognizer covering every language.
	KindGeneralASR BackendKind = "general-asr"

	// KindSpecializedASR is the recognizer for the specialized language set.
	KindSpecializedASR BackendKind = "specialized-asr"

	// KindPrimaryTTS is the neural synthesizer for the primary language set.
	KindPrimaryTTS BackendKind = "primary-tts"

	// KindFallbackTTS is the platform synthesizer covering everything else.
	KindFallbackTTS BackendKind = "fallback-tts"
)

// Reason is the recorded rationale of a routing decision.
type Reason string

const (
	// ReasonSpecializedMatch: the specialized ASR backend supports the code.
	ReasonSpecializedMatch Reason = "specialized-match"

	// ReasonLowConfidenceDefault: identification confidence fell below the
	// threshold, so the general backend is used regardless of code.
	ReasonLowConfidenceDefault Reason = "low-confidence-default"

	// ReasonFallbackDefault: no specialized support; general backend covers.
	ReasonFallbackDefault Reason = "fallback-default"

	// ReasonFirstPassDefault: recognition ran before any language tag
	// existed, on the general backend. Recorded by the orchestrator.
	ReasonFirstPassDefault Reason = "first-pass-default"

	// ReasonLanguageHint: a caller-supplied hint drove the selection.
	ReasonLanguageHint Reason = "language-hint"

	// ReasonPrimaryMatch: the primary TTS backend supports the target code.
	ReasonPrimaryMatch Reason = "primary-match"

	// ReasonFallbackPlatform: target not in the primary set; platform
	// synthesizer used and excluded from evaluation.
	ReasonFallbackPlatform Reason = "fallback-platform"
)

// Decision records one backend selection. The Tag always predates the
// decision; decisions are immutable once recorded.
type Decision struct {
	// Backend is the chosen backend identifier.
	Backend backend.Provider `json:"backend"`

	// Kind is the routing role the backend was chosen for.
	Kind BackendKind `json:"kind"`

	// Tag is the language tag that drove the selection.
	Tag lang.Tag `json:"tag"`

	// Reason is the recorded rationale.
	Reason Reason `json:"reason"`

	// EvaluationEligible marks whether the resulting output participates in
	// quality/latency comparisons. Always true for ASR decisions.
	EvaluationEligible bool `json:"evaluation_eligible"`
}

// NoTTSBackendError reports that no synthesis backend is available for a
// target language. Fatal for the utterance's synthesis stage, not for the
// process.
type NoTTSBackendError struct {
	Language string
}

func (e *NoTTSBackendError) Error() string {
	return fmt.Sprintf("no TTS backend available for language %q", e.Language)
}

// toSet converts a code list into a membership set.
func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
