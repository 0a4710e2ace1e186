package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(id string, stage Stage) *Run {
	return &Run{
		ID:         id,
		StartedAt:  time.Now().Add(-time.Second),
		FinishedAt: time.Now(),
		Stage:      stage,
		Phases: []PhaseRecord{
			{Stage: StageCaptured, Start: time.Now().Add(-time.Second), End: time.Now()},
		},
	}
}

func TestRunLog_AppendAndEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evaluation_log.json")
	log := NewRunLog(path)

	require.NoError(t, log.Append(sampleRun("run-1", StageCompleted)))
	require.NoError(t, log.Append(sampleRun("run-2", StageFailed)))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ID)
	assert.Equal(t, "run-2", entries[1].ID)
	assert.Equal(t, StageCompleted, entries[0].Stage)
	assert.Equal(t, StageFailed, entries[1].Stage)

	// The file stays a valid JSON array after every append.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []json.RawMessage
	assert.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2)
}

func TestRunLog_EntriesMissingFile(t *testing.T) {
	log := NewRunLog(filepath.Join(t.TempDir(), "never-written.json"))

	entries, err := log.Entries()
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunLog_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evaluation_log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	log := NewRunLog(path)
	require.NoError(t, log.Append(sampleRun("run-1", StageCompleted)))

	entries, err := log.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0].ID)
}
