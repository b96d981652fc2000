package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsUpdate(t *testing.T) {
	s := New()
	s.Update(0, false)
	s.Update(16*time.Millisecond, true)
	s.Update(17500*time.Microsecond, false)
	s.SetWsClients(2)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, float64(3), got["frames"])
	assert.Equal(t, float64(1), got["frame_overruns"])
	assert.Equal(t, float64(2), got["ws_clients"])
	assert.Equal(t, 17.5, got["frame_time_ms"])
	assert.Contains(t, got, "fps")
	assert.Contains(t, got, "uptime")
}
