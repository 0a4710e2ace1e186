package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// RunLog appends finalized run records to a JSON array file for offline
// analysis. The format is a convenience, not a stable wire contract.
type RunLog struct {
	path string
	mu   sync.Mutex
}

// NewRunLog creates a run log writing to path.
func NewRunLog(path string) *RunLog {
	return &RunLog{path: path}
}

// Path returns the log file path.
func (l *RunLog) Path() string {
	return l.path
}

// Append adds a run to the log with a safe read-modify-write so the file
// stays a valid JSON array. A missing or corrupt file starts a fresh array.
func (l *RunLog) Append(run *Run) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var existing []json.RawMessage
	if data, err := os.ReadFile(l.path); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			existing = nil
		}
	}

	entry, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	existing = append(existing, entry)

	out, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run log: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(l.path, out, 0o644); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// Entries reads back all recorded runs.
func (l *RunLog) Entries() ([]Run, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("parse run log: %w", err)
	}
	return runs, nil
}
