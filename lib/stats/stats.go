package stats

import (
	"encoding/json"
	"sync"
	"time"
)

type Stats struct {
	mu sync.Mutex

	snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
}

type snapshot struct {
	Uptime        float64 `json:"uptime"`
	FPS           uint64  `json:"fps"`
	Frames        uint64  `json:"frames"`
	FrameOverruns uint64  `json:"frame_overruns"`
	FrameTimeMs   float64 `json:"frame_time_ms"`
	WsClients     int     `json:"ws_clients"`
}

func New() *Stats {
	s := &Stats{}
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

// Update is called once per rendered frame with the time since the
// previous one.
func (s *Stats) Update(dt time.Duration, overrun bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Frames++
	s.FrameTimeMs = float64(dt.Microseconds()) / 1e3
	if overrun {
		s.FrameOverruns++
	}
	s.frameCounter++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}

	s.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WsClients = n
}

func (s *Stats) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	snap := s.snapshot
	s.mu.Unlock()
	return json.Marshal(snap)
}
