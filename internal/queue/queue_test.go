package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMessageRoundTrip(t *testing.T) {
	msg := RunMessage{
		RunID: uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		JobID: uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
	}

	body, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"run_id":"11111111-2222-3333-4444-555555555555","job_id":"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"}`,
		string(body))

	var got RunMessage
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, msg, got)
}

func TestUpdateKey(t *testing.T) {
	runID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "match.11111111-2222-3333-4444-555555555555", UpdateKey(runID))
}

func TestStatusUpdateShape(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	update := StatusUpdate{
		RunID:     uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Status:    "processing",
		Message:   "match run started",
		Timestamp: ts,
	}

	body, err := json.Marshal(update)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", decoded["run_id"])
	assert.Equal(t, "processing", decoded["status"])
	assert.Equal(t, "match run started", decoded["message"])
	assert.Equal(t, "2025-06-01T12:00:00Z", decoded["timestamp"])
}
