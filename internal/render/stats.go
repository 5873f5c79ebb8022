package render

import (
	"time"

	"github.com/loov/hrtime"
)

// FrameReport summarizes the frames presented over one stats interval.
type FrameReport struct {
	Frames   int
	Elapsed  time.Duration
	AvgFrame time.Duration
}

func (r FrameReport) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// FrameStats measures frame pacing with the high resolution clock.
type FrameStats struct {
	now      func() time.Duration
	interval time.Duration
	start    time.Duration
	frames   int
	started  bool
}

func NewFrameStats(interval time.Duration) *FrameStats {
	return &FrameStats{now: hrtime.Now, interval: interval}
}

// Frame records one presented frame and returns a report once per interval.
func (s *FrameStats) Frame() (FrameReport, bool) {
	now := s.now()
	if !s.started {
		s.start = now
		s.started = true
	}
	s.frames++

	elapsed := now - s.start
	if s.interval <= 0 || elapsed < s.interval {
		return FrameReport{}, false
	}

	report := FrameReport{
		Frames:   s.frames,
		Elapsed:  elapsed,
		AvgFrame: elapsed / time.Duration(s.frames),
	}
	s.start = now
	s.frames = 0
	return report, true
}

// Reset discards the current interval, e.g. after the loop stalled on a
// minimized window.
func (s *FrameStats) Reset() {
	s.started = false
	s.frames = 0
}
