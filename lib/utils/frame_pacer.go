package utils

import "time"

// FramePacer keeps a loop at a fixed rate. Call Start at the top of the
// frame and Wait at the bottom.
type FramePacer struct {
	Interval time.Duration

	frameStart time.Time
	sleep      func(time.Duration)
	now        func() time.Time
}

func NewFramePacer(fps int) *FramePacer {
	p := &FramePacer{sleep: time.Sleep, now: time.Now}
	if fps > 0 {
		p.Interval = time.Second / time.Duration(fps)
	}
	return p
}

func (p *FramePacer) Start() {
	p.frameStart = p.now()
}

// Wait blocks for whatever is left of the frame interval and reports
// whether the frame took longer than the interval.
func (p *FramePacer) Wait() (overrun bool) {
	if p.Interval <= 0 {
		return false
	}
	elapsed := p.now().Sub(p.frameStart)
	if elapsed >= p.Interval {
		return elapsed > p.Interval
	}
	p.sleep(p.Interval - elapsed)
	return false
}
