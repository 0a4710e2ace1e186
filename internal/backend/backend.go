package backend

import (
	"context"
	"io"
	"time"
)

// Provider is a string identifier for a backend provider.
type Provider string

const (
	// ProviderWhisperCPP is the general multilingual ASR backend.
	ProviderWhisperCPP Provider = "whisper.cpp"

	// ProviderIndicConformer is the Indic-specialized ASR backend.
	ProviderIndicConformer Provider = "indic-conformer"

	// ProviderNLLB is the NLLB-200 translation backend.
	ProviderNLLB Provider = "nllb"

	// ProviderIndicParler is the primary neural TTS backend.
	ProviderIndicParler Provider = "indic-parler"

	// ProviderESpeak is the platform fallback TTS backend.
	ProviderESpeak Provider = "espeak-ng"
)

// Backend defines the core interface for all inference backends.
type Backend interface {
	// Provider returns the backend identifier.
	Provider() Provider

	// Infer executes inference and returns the complete result.
	Infer(ctx context.Context, req *Request) (*Response, error)

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for an inference call.
type Request struct {
	// ModelPath is the path to the model file. Empty for backends that
	// need no weights (platform TTS).
	ModelPath string

	// Input is the raw input data (text or audio bytes).
	Input io.Reader

	// Parameters contains backend-specific inference parameters.
	Parameters map[string]any
}

// Response contains the result of an inference operation.
type Response struct {
	// Output is the raw output data.
	Output io.Reader

	// Metadata contains backend-specific information.
	Metadata *ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	Provider        Provider       `json:"provider"`
	Model           string         `json:"model"`
	Timestamp       time.Time      `json:"timestamp"`
	OutputBytes     int64          `json:"output_bytes"`
	BackendSpecific map[string]any `json:"backend_specific"`
}
