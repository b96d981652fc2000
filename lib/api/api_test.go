package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewer struct {
	result   *shaders.Result
	shutdown atomic.Bool
}

func (f *fakeViewer) ShaderResult() *shaders.Result { return f.result }
func (f *fakeViewer) RequestShutdown()              { f.shutdown.Store(true) }

func newTestServer(t *testing.T, v *fakeViewer) (*Api, *httptest.Server) {
	t.Helper()
	a := New(&config.ApiCfg{Bind: "localhost:0"}, v, stats.New())
	a.pushInterval = 10 * time.Millisecond
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return a, srv
}

func TestGetShader(t *testing.T) {
	v := &fakeViewer{result: &shaders.Result{
		Program: 7,
		Status:  shaders.LinkFailed,
		Diagnostics: []shaders.Diagnostic{
			{Kind: shaders.LinkError, Stage: shaders.ProgramStage, Log: "mismatch"},
		},
	}}
	_, srv := newTestServer(t, v)

	resp, err := http.Get(srv.URL + "/api/shader")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Program     uint32
		Status      string
		Diagnostics []string
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, uint32(7), got.Program)
	assert.Equal(t, "link_failed", got.Status)
	assert.Equal(t, []string{"Program Linking Error of type: PROGRAM\nmismatch"}, got.Diagnostics)
}

func TestGetShaderBeforeLoad(t *testing.T) {
	_, srv := newTestServer(t, &fakeViewer{})

	resp, err := http.Get(srv.URL + "/api/shader")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestKill(t *testing.T) {
	v := &fakeViewer{}
	_, srv := newTestServer(t, v)

	resp, err := http.Get(srv.URL + "/api/kill")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.False(t, v.shutdown.Load())

	resp, err = http.Post(srv.URL+"/api/kill", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, v.shutdown.Load())
}

func TestStatsAndMetrics(t *testing.T) {
	a, srv := newTestServer(t, &fakeViewer{})
	a.Stats.Update(time.Millisecond, false)

	resp, err := http.Get(srv.URL + "/api/stats")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, float64(1), got["frames"])

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "glquad_frames_rendered_total")
}

func TestWebsocketPushesStats(t *testing.T) {
	a, srv := newTestServer(t, &fakeViewer{})
	a.Stats.Update(time.Millisecond, true)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, float64(1), got["frame_overruns"])
}
