// Package audio is the capture/output boundary of the pipeline. The core
// treats audio as an opaque byte stream; this package only moves it between
// files and stages and peeks at WAV headers for logging.
package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source provides one utterance of captured audio.
type Source interface {
	// Capture returns the raw audio bytes of the utterance.
	Capture(ctx context.Context) ([]byte, error)
}

// Sink accepts synthesized audio for storage or playback.
type Sink interface {
	// Store persists synthesized audio under name and returns its location.
	Store(ctx context.Context, name string, wav io.Reader) (string, error)
}

// FileSource reads a pre-recorded utterance from a WAV file.
type FileSource struct {
	Path string
}

// Capture reads the file.
func (s *FileSource) Capture(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", s.Path, err)
	}
	return data, nil
}

// BytesSource serves in-memory audio, mainly for tests.
type BytesSource struct {
	Data []byte
}

// Capture returns the held bytes.
func (s *BytesSource) Capture(_ context.Context) ([]byte, error) {
	return s.Data, nil
}

// DirSink stores synthesized audio as WAV files in a directory.
type DirSink struct {
	Dir string
}

// Store writes the audio under name in the sink directory.
func (s *DirSink) Store(_ context.Context, name string, wav io.Reader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare output directory: %w", err)
	}

	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, wav); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	return path, nil
}

// DiscardSink drops synthesized audio, for runs that only need the record.
type DiscardSink struct{}

// Store consumes and discards the audio.
func (DiscardSink) Store(_ context.Context, _ string, wav io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, wav); err != nil {
		return "", err
	}
	return "", nil
}

var _ Source = (*FileSource)(nil)
var _ Source = (*BytesSource)(nil)
var _ Sink = (*DirSink)(nil)
var _ Sink = (DiscardSink{})
