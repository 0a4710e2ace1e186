// Package pipeline sequences one utterance through capture, recognition,
// language identification, routing, translation and synthesis, recording
// phase timings and routing decisions for offline analysis.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/voxloom/voxloom/internal/audio"
	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/lang"
	"github.com/voxloom/voxloom/internal/model"
	"github.com/voxloom/voxloom/internal/route"
	"github.com/voxloom/voxloom/internal/service"
)

// backendDetectConfidence is assigned when text identification is
// inconclusive but the recognizer reported an audio-based detection. The
// recognizer hears the signal directly, so its verdict ranks high.
const backendDetectConfidence = 0.9

// Request describes one pipeline invocation.
type Request struct {
	// Source provides the captured utterance.
	Source audio.Source

	// TargetLanguage is the synthesis target, as a language name or code.
	TargetLanguage string

	// LanguageHint optionally names the expected input language. When set,
	// recognition routes from it directly instead of a two-pass run.
	LanguageHint string
}

// Orchestrator runs the pipeline. Stages execute strictly sequentially
// within an invocation; the model registry is the only shared state.
type Orchestrator struct {
	cfg        *config.Config
	manager    *model.Manager
	registry   *model.Registry
	backends   *backend.Registry
	identifier lang.Identifier
	asrRouter  *route.ASRRouter
	ttsRouter  *route.TTSRouter
	asr        *service.ASR
	nmt        *service.NMT
	tts        *service.TTS
	sink       audio.Sink
	runLog     *RunLog

	nmtProvider     backend.Provider
	modelByProvider map[backend.Provider]string
}

// New wires an orchestrator. The registry is taken from the manager so every
// caller shares one handle cache.
func New(
	cfg *config.Config,
	manager *model.Manager,
	backends *backend.Registry,
	identifier lang.Identifier,
	asrRouter *route.ASRRouter,
	ttsRouter *route.TTSRouter,
	sink audio.Sink,
	runLog *RunLog,
) *Orchestrator {
	modelByProvider := make(map[backend.Provider]string)
	for _, id := range cfg.AssignedModels() {
		if m, ok := cfg.Models[id]; ok {
			modelByProvider[backend.Provider(m.Backend)] = id
		}
	}

	nmtProvider := backend.Provider("")
	if m, ok := cfg.Models[cfg.Services.NMT.Model]; ok {
		nmtProvider = backend.Provider(m.Backend)
	}

	return &Orchestrator{
		cfg:             cfg,
		manager:         manager,
		registry:        manager.Registry(),
		backends:        backends,
		identifier:      identifier,
		asrRouter:       asrRouter,
		ttsRouter:       ttsRouter,
		asr:             service.NewASR(backends),
		nmt:             service.NewNMT(backends),
		tts:             service.NewTTS(backends),
		sink:            sink,
		runLog:          runLog,
		nmtProvider:     nmtProvider,
		modelByProvider: modelByProvider,
	}
}

// Warmup eagerly loads every assigned model through the same GetOrLoad entry
// point the timed run uses, so first-call latency never lands in a phase
// timing. Individual failures are logged and skipped; the timed run retries
// them since failed loads are never cached.
func (o *Orchestrator) Warmup(ctx context.Context) {
	providers := make([]string, 0, len(o.modelByProvider))
	for p := range o.modelByProvider {
		providers = append(providers, string(p))
	}
	sort.Strings(providers)

	for _, p := range providers {
		provider := backend.Provider(p)
		start := time.Now()
		if _, err := o.loadHandle(ctx, provider); err != nil {
			slog.Warn("Warmup load failed", "backend", provider, "error", err)
			continue
		}
		slog.Info("Warmup load complete", "backend", provider, "elapsed", time.Since(start))
	}
}

// Execute runs the full pipeline for one utterance. The returned Run record
// is always finalized and appended to the run log, Completed or Failed; a
// non-nil error accompanies a Failed run. The process and the model cache
// stay intact either way.
func (o *Orchestrator) Execute(ctx context.Context, req *Request) (*Run, error) {
	run := newRun()
	logger := slog.With("run_id", run.ID)

	fail := func(stage Stage, start time.Time, decisions []route.Decision, err error) (*Run, error) {
		run.appendPhase(PhaseRecord{Stage: stage, Start: start, End: time.Now(), Decisions: decisions, Error: err.Error()})
		run.FailedStage = stage
		run.Error = err.Error()
		run.finalize(StageFailed)
		logger.Error("Pipeline run failed", "stage", stage, "error", err)
		o.record(run, logger)
		return run, fmt.Errorf("stage %s: %w", stage, err)
	}

	// Captured
	start := time.Now()
	audioBytes, err := req.Source.Capture(ctx)
	if err != nil {
		return fail(StageCaptured, start, nil, err)
	}
	if info, err := audio.ParseWAVHeader(audioBytes); err == nil {
		logger.Info("Audio captured", "duration", info.Duration(), "sample_rate", info.SampleRate, "channels", info.Channels)
	}
	run.appendPhase(PhaseRecord{Stage: StageCaptured, Start: start, End: time.Now()})

	// Recognized. Without a hint this is an explicit first pass on the
	// general backend; routing may order a second pass once the language
	// is known.
	start = time.Now()
	firstProvider := o.asrRouter.General()
	params := map[string]any{"language": "auto"}
	var recDecisions []route.Decision

	if req.LanguageHint != "" {
		hintTag := lang.Tag{Code: req.LanguageHint, Confidence: 1}
		d := o.asrRouter.Select(hintTag)
		d.Reason = route.ReasonLanguageHint
		recDecisions = append(recDecisions, d)
		firstProvider = d.Backend
		params["language"] = req.LanguageHint
		logger.Info("Recognition routed from language hint", "hint", req.LanguageHint, "backend", d.Backend, "reason", d.Reason)
	} else {
		recDecisions = append(recDecisions, route.Decision{
			Backend:            firstProvider,
			Kind:               route.KindGeneralASR,
			Tag:                lang.Unknown(),
			Reason:             route.ReasonFirstPassDefault,
			EvaluationEligible: true,
		})
		logger.Info("No language hint, first recognition pass uses the general backend", "backend", firstProvider)
	}

	handle, err := o.loadHandle(ctx, firstProvider)
	if err != nil {
		return fail(StageRecognized, start, recDecisions, err)
	}
	transcript, detected, err := o.asr.Transcribe(ctx, firstProvider, handle, audioBytes, params)
	if err != nil {
		return fail(StageRecognized, start, recDecisions, err)
	}
	transcript = strings.TrimSpace(transcript)
	run.Outputs.Transcription = transcript
	run.appendPhase(PhaseRecord{Stage: StageRecognized, Start: start, End: time.Now(), Decisions: recDecisions})
	logger.Info("Recognition complete", "backend", firstProvider, "text_length", len(transcript))

	// LanguageIdentified
	start = time.Now()
	tag := o.identifier.Identify(transcript)
	if tag.IsUnknown() && detected != "" {
		tag = lang.Tag{Code: detected, Confidence: backendDetectConfidence}
		logger.Info("Text identification inconclusive, adopting recognizer-detected language", "code", detected)
	}
	run.Outputs.SourceLanguage = tag
	run.appendPhase(PhaseRecord{Stage: StageLanguageIdentified, Start: start, End: time.Now()})
	logger.Info("Language identified", "code", tag.Code, "confidence", tag.Confidence)

	// Routed. Both routers run on the fresh tag; the ASR decision is
	// recorded even when it re-confirms the first pass.
	start = time.Now()
	var routedDecisions []route.Decision

	asrDecision := o.asrRouter.Select(tag)
	routedDecisions = append(routedDecisions, asrDecision)

	if asrDecision.Backend != firstProvider {
		logger.Info("Stronger recognition route found, re-running recognition",
			"backend", asrDecision.Backend, "reason", asrDecision.Reason, "language", tag.Code)

		rerouteHandle, err := o.loadHandle(ctx, asrDecision.Backend)
		if err != nil {
			return fail(StageRouted, start, routedDecisions, err)
		}
		rerouteLang := tag.Code
		if tag.IsUnknown() {
			rerouteLang = "auto"
		}
		rerouted, _, err := o.asr.Transcribe(ctx, asrDecision.Backend, rerouteHandle, audioBytes, map[string]any{"language": rerouteLang})
		if err != nil {
			return fail(StageRouted, start, routedDecisions, err)
		}
		transcript = strings.TrimSpace(rerouted)
		run.Outputs.Transcription = transcript
	}

	targetTag, err := o.resolveTarget(req.TargetLanguage)
	if err != nil {
		return fail(StageRouted, start, routedDecisions, err)
	}
	run.Outputs.TargetLanguage = targetTag

	ttsDecision, ttsErr := o.ttsRouter.Select(targetTag)
	if ttsErr == nil {
		routedDecisions = append(routedDecisions, ttsDecision)
		run.Outputs.EvaluationEligible = ttsDecision.EvaluationEligible
		logger.Info("Synthesis routed", "backend", ttsDecision.Backend, "reason", ttsDecision.Reason, "evaluation_eligible", ttsDecision.EvaluationEligible)
	} else {
		logger.Warn("No synthesis backend for target language", "language", targetTag.Code)
	}
	run.appendPhase(PhaseRecord{Stage: StageRouted, Start: start, End: time.Now(), Decisions: routedDecisions})

	// Translated
	start = time.Now()
	if transcript == "" {
		return fail(StageTranslated, start, nil, errors.New("empty transcription, nothing to translate"))
	}
	nmtHandle, err := o.loadHandle(ctx, o.nmtProvider)
	if err != nil {
		return fail(StageTranslated, start, nil, err)
	}
	translated, err := o.nmt.Translate(ctx, o.nmtProvider, nmtHandle, transcript, tag.Code, targetTag.Code)
	if err != nil {
		return fail(StageTranslated, start, nil, err)
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return fail(StageTranslated, start, nil, errors.New("translation produced no output"))
	}
	run.Outputs.Translation = translated
	run.appendPhase(PhaseRecord{Stage: StageTranslated, Start: start, End: time.Now()})
	logger.Info("Translation complete", "src", tag.Code, "tgt", targetTag.Code, "text_length", len(translated))

	// Synthesized. A routing error from the Routed stage lands here: fatal
	// for this utterance's synthesis, not for the process.
	start = time.Now()
	if ttsErr != nil {
		return fail(StageSynthesized, start, nil, ttsErr)
	}

	ttsHandle, err := o.loadHandle(ctx, ttsDecision.Backend)
	if err != nil {
		return fail(StageSynthesized, start, nil, err)
	}
	wav, err := o.tts.Synthesize(ctx, ttsDecision.Backend, ttsHandle, translated, targetTag.Code)
	if err != nil {
		return fail(StageSynthesized, start, nil, err)
	}

	outPath, err := o.sink.Store(ctx, run.ID+".wav", bytes.NewReader(wav))
	if err != nil {
		return fail(StageSynthesized, start, nil, err)
	}
	run.Outputs.OutputPath = outPath
	run.Outputs.OutputBytes = len(wav)
	run.appendPhase(PhaseRecord{Stage: StageSynthesized, Start: start, End: time.Now()})
	if !ttsDecision.EvaluationEligible {
		logger.Info("Synthesized output excluded from evaluation", "backend", ttsDecision.Backend)
	}

	// Completed
	run.finalize(StageCompleted)
	o.record(run, logger)
	o.logReport(run, logger)

	return run, nil
}

// loadHandle resolves the model for a backend through the registry,
// yielding the cached handle or paying the load cost once. Backends without
// an assigned model (platform TTS) return a nil handle.
func (o *Orchestrator) loadHandle(ctx context.Context, provider backend.Provider) (*model.Handle, error) {
	id, ok := o.modelByProvider[provider]
	if !ok || id == "" {
		return nil, nil
	}

	var locate model.Locator
	if b, ok := o.backends.Get(provider); ok {
		if ml, ok := b.(backend.ModelLocator); ok {
			locate = ml.ResolveModelPath
		}
	}

	return o.registry.GetOrLoad(ctx, id, o.manager.Loader(id, locate))
}

// resolveTarget turns a language name or code into a target tag.
func (o *Orchestrator) resolveTarget(input string) (lang.Tag, error) {
	code, _, ok := lang.MatchName(input)
	if !ok {
		return lang.Tag{}, fmt.Errorf("unsupported target language %q (close matches: %s)",
			input, strings.Join(lang.Suggestions(input, 3), ", "))
	}
	return lang.Tag{Code: code, Confidence: 1}, nil
}

// record appends the run to the run log.
func (o *Orchestrator) record(run *Run, logger *slog.Logger) {
	if o.runLog == nil {
		return
	}
	if err := o.runLog.Append(run); err != nil {
		logger.Warn("Failed to append run log", "path", o.runLog.Path(), "error", err)
	}
}

// logReport emits the per-phase timing summary of a completed run.
func (o *Orchestrator) logReport(run *Run, logger *slog.Logger) {
	durations := run.Durations()
	logger.Info("Pipeline run completed",
		"total", run.Total(),
		"captured", durations[StageCaptured],
		"recognized", durations[StageRecognized],
		"language_identified", durations[StageLanguageIdentified],
		"routed", durations[StageRouted],
		"translated", durations[StageTranslated],
		"synthesized", durations[StageSynthesized],
		"evaluation_eligible", run.Outputs.EvaluationEligible,
		"heap_bytes", run.Resources.HeapBytes,
	)
}
