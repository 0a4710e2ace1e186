package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/voxloom/voxloom/internal/audio"
	"github.com/voxloom/voxloom/internal/backend"
	"github.com/voxloom/voxloom/internal/backend/espeak"
	"github.com/voxloom/voxloom/internal/backend/indic"
	"github.com/voxloom/voxloom/internal/backend/nllb"
	"github.com/voxloom/voxloom/internal/backend/parler"
	"github.com/voxloom/voxloom/internal/backend/whisper"
	"github.com/voxloom/voxloom/internal/config"
	"github.com/voxloom/voxloom/internal/env"
	"github.com/voxloom/voxloom/internal/envvar"
	"github.com/voxloom/voxloom/internal/lang"
	"github.com/voxloom/voxloom/internal/logger"
	"github.com/voxloom/voxloom/internal/model"
	"github.com/voxloom/voxloom/internal/pipeline"
	"github.com/voxloom/voxloom/internal/route"
)

const defaultBackendTimeout = 2 * time.Minute

func main() {
	var (
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "voxloom.v1.schema.json"), "Path to schema file")
		flagInput      = flag.String("input", "", "Path to the input WAV utterance")
		flagTarget     = flag.String("target", "english", "Target language name or code")
		flagHint       = flag.String("hint", "", "Optional input language hint (code)")
		flagOutputDir  = flag.String("output-dir", "out", "Directory for synthesized audio")
	)
	flag.Parse()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile("logs/voxloom.log"),
		),
	)

	if *flagInput == "" {
		slog.Error("No input utterance given, pass -input")
		os.Exit(2)
	}

	manager := model.NewManager(model.NewRegistry())

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		if err := manager.SyncFromConfig(context.Background(), cfg); err != nil {
			slog.Error("Failed to sync models from config", "error", err)
			return
		}
	})
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
		os.Exit(1)
	}

	cfg := watcher.Snapshot()
	if err := manager.SyncFromConfig(context.Background(), cfg); err != nil {
		slog.Error("Failed to sync models from config", "error", err)
		os.Exit(1)
	}
	slog.Info("Config loaded successfully", "config", *flagConfigPath, "schema", *flagSchemaPath)

	backends := buildBackends(cfg)
	defer backends.Close()

	general, specialized := asrProviders(cfg)
	asrRouter := route.NewASRRouter(&cfg.Routing, general, specialized)
	ttsRouter := route.NewTTSRouter(&cfg.Routing, ttsPrimaryProvider(cfg), backend.ProviderESpeak, backends)

	orchestrator := pipeline.New(
		cfg,
		manager,
		backends,
		lang.NewScriptIdentifier(),
		asrRouter,
		ttsRouter,
		&audio.DirSink{Dir: *flagOutputDir},
		pipeline.NewRunLog(runLogPath(cfg)),
	)

	ctx := context.Background()

	if cfg.Routing.EnableWarmup {
		orchestrator.Warmup(ctx)
	}

	run, err := orchestrator.Execute(ctx, &pipeline.Request{
		Source:         &audio.FileSource{Path: *flagInput},
		TargetLanguage: *flagTarget,
		LanguageHint:   *flagHint,
	})
	if err != nil {
		slog.Error("Run failed", "run_id", run.ID, "stage", run.FailedStage, "error", err)
		os.Exit(1)
	}

	slog.Info("Run finished",
		"run_id", run.ID,
		"transcription", run.Outputs.Transcription,
		"translation", run.Outputs.Translation,
		"output", run.Outputs.OutputPath,
	)
}

// buildBackends constructs every backend whose binary is configured and
// present. Absent binaries are skipped with a warning; routing degrades to
// whatever remains registered.
func buildBackends(cfg *config.Config) *backend.Registry {
	registry := backend.NewRegistry()

	for name, bc := range cfg.Backends {
		timeout := defaultBackendTimeout
		if bc.TimeoutSeconds > 0 {
			timeout = time.Duration(bc.TimeoutSeconds) * time.Second
		}

		var (
			b   backend.Backend
			err error
		)
		switch backend.Provider(name) {
		case backend.ProviderWhisperCPP:
			b, err = whisper.NewBackend(bc.Bin, timeout)
		case backend.ProviderIndicConformer:
			b, err = indic.NewBackend(bc.Bin, timeout)
		case backend.ProviderNLLB:
			b, err = nllb.NewBackend(bc.Bin, timeout)
		case backend.ProviderIndicParler:
			b, err = parler.NewBackend(bc.Bin, timeout)
		case backend.ProviderESpeak:
			b, err = espeak.NewBackend(bc.Bin, timeout)
		default:
			slog.Warn("Unknown backend in config, skipping", "backend", name)
			continue
		}
		if err != nil {
			slog.Warn("Backend unavailable, skipping", "backend", name, "bin", bc.Bin, "error", err)
			continue
		}

		registry.Register(b)
		slog.Info("Backend registered", "backend", name, "bin", bc.Bin)
	}

	return registry
}

// asrProviders resolves the recognition providers from the assigned models.
// An unset specialized assignment yields an empty provider, which routes
// everything to the general backend.
func asrProviders(cfg *config.Config) (general, specialized backend.Provider) {
	general = backend.ProviderWhisperCPP
	if m, ok := cfg.Models[cfg.Services.ASR.General]; ok {
		general = backend.Provider(m.Backend)
	}
	if m, ok := cfg.Models[cfg.Services.ASR.Specialized]; ok {
		specialized = backend.Provider(m.Backend)
	}
	return general, specialized
}

// ttsPrimaryProvider resolves the primary synthesis provider, empty when no
// primary model is assigned.
func ttsPrimaryProvider(cfg *config.Config) backend.Provider {
	if m, ok := cfg.Models[cfg.Services.TTS.Primary]; ok {
		return backend.Provider(m.Backend)
	}
	return ""
}

// runLogPath resolves the run log location, env override first.
func runLogPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.VoxloomRunLog); p != "" {
		return p
	}
	return cfg.Storage.RunLog
}
