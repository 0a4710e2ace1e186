package pipeline

import (
	"fmt"
	"runtime"
	"time"

	"github.com/voxloom/voxloom/internal/lang"
	"github.com/voxloom/voxloom/internal/route"
)

// Stage names a pipeline state. A run moves strictly forward through the
// stages; Failed is terminal and reachable from any non-terminal stage.
type Stage string

const (
	StageCaptured           Stage = "Captured"
	StageRecognized         Stage = "Recognized"
	StageLanguageIdentified Stage = "LanguageIdentified"
	StageRouted             Stage = "Routed"
	StageTranslated         Stage = "Translated"
	StageSynthesized        Stage = "Synthesized"
	StageCompleted          Stage = "Completed"
	StageFailed             Stage = "Failed"
)

// PhaseRecord is one completed stage transition. Records are appended in
// stage order and never reordered or mutated afterwards.
type PhaseRecord struct {
	Stage     Stage            `json:"stage"`
	Start     time.Time        `json:"start_ts"`
	End       time.Time        `json:"end_ts"`
	Decisions []route.Decision `json:"routing_decisions,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// Duration is the wall-clock span of the phase.
func (p PhaseRecord) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Outputs collects the user-visible artifacts of a run.
type Outputs struct {
	Transcription      string   `json:"transcription,omitempty"`
	SourceLanguage     lang.Tag `json:"source_language"`
	TargetLanguage     lang.Tag `json:"target_language"`
	Translation        string   `json:"translation,omitempty"`
	OutputPath         string   `json:"output_path,omitempty"`
	OutputBytes        int      `json:"output_bytes,omitempty"`
	EvaluationEligible bool     `json:"evaluation_eligible"`
}

// ResourceSnapshot captures process resource usage at run completion,
// for offline analysis only.
type ResourceSnapshot struct {
	HeapBytes       uint64 `json:"heap_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	GCCycles        uint32 `json:"gc_cycles"`
}

// Run is the structured record of one pipeline invocation. It is created at
// invocation start, finalized at completion or failure, and persisted only
// for offline analysis; control flow never reads it back.
type Run struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	Stage       Stage            `json:"stage"`
	FailedStage Stage            `json:"failed_stage,omitempty"`
	Error       string           `json:"error,omitempty"`
	Phases      []PhaseRecord    `json:"phases"`
	Outputs     Outputs          `json:"outputs"`
	Resources   ResourceSnapshot `json:"resources"`
}

// newRun starts an empty run record.
func newRun() *Run {
	return &Run{
		ID:        fmt.Sprintf("run-%d", time.Now().UnixNano()),
		StartedAt: time.Now(),
		Stage:     StageCaptured,
	}
}

// appendPhase records a completed phase. Phases arrive in stage order by
// construction; the record is immutable from here on.
func (r *Run) appendPhase(p PhaseRecord) {
	r.Phases = append(r.Phases, p)
}

// finalize seals the run in the given terminal state.
func (r *Run) finalize(stage Stage) {
	r.Stage = stage
	r.FinishedAt = time.Now()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	r.Resources = ResourceSnapshot{
		HeapBytes:       ms.HeapAlloc,
		TotalAllocBytes: ms.TotalAlloc,
		GCCycles:        ms.NumGC,
	}
}

// Total is the wall-clock span of the whole run.
func (r *Run) Total() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Durations returns the per-stage wall-clock durations in stage order.
func (r *Run) Durations() map[Stage]time.Duration {
	out := make(map[Stage]time.Duration, len(r.Phases))
	for _, p := range r.Phases {
		out[p.Stage] = p.Duration()
	}
	return out
}

// Decisions returns every routing decision in the order taken.
func (r *Run) Decisions() []route.Decision {
	var out []route.Decision
	for _, p := range r.Phases {
		out = append(out, p.Decisions...)
	}
	return out
}
