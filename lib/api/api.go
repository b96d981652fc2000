package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/fosdem/glquad/lib/config"
	"github.com/fosdem/glquad/lib/metrics"
	"github.com/fosdem/glquad/lib/rendering/shaders"
	"github.com/fosdem/glquad/lib/stats"
	"github.com/gorilla/websocket"
)

// Viewer is the part of the render loop the API may look at or poke.
type Viewer interface {
	ShaderResult() *shaders.Result
	RequestShutdown()
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	viewer Viewer

	Stats *stats.Stats

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool

	pushInterval time.Duration
}

func New(cfg *config.ApiCfg, v Viewer, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.viewer = v
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = s
	a.pushInterval = 2 * time.Second
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/shader", a.getShader)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	a.log("shutting down as per api request")
	a.viewer.RequestShutdown()
	a.writeOK(w)
}

func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, a.Stats)
}

func (a *Api) getShader(w http.ResponseWriter, _ *http.Request) {
	r := a.viewer.ShaderResult()
	if r == nil {
		http.Error(w, "no shader loaded yet", http.StatusServiceUnavailable)
		return
	}
	a.writeJSON(w, r)
}

func (a *Api) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode response: %s", err), http.StatusInternalServerError)
		return
	}
}

func (a *Api) writeOK(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.log("could not write response: %s", err)
	}
}

func (a *Api) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "api"))
}

// ServeInBackground starts the API when cfg is set, and returns nil
// otherwise.
func ServeInBackground(cfg *config.ApiCfg, v Viewer, s *stats.Stats) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, v, s)

	theApi.log("starting web server on %s", cfg.Bind)
	go func() {
		err := theApi.Serve()
		if err != nil && err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("web server stopped: %s", err), slog.String("module", "api"))
		}
	}()
	return theApi
}

func (a *Api) Close() error {
	return a.srv.Close()
}
