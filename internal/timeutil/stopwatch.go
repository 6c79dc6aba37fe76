package timeutil

import "time"

type Stopwatch struct {
	now     func() time.Time
	start   time.Time
	acc     time.Duration
	running bool

	lapMark time.Duration
	laps    []time.Duration
}

func NewStopwatch(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.start = s.now()
	s.running = true
}

func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.acc += s.now().Sub(s.start)
	s.running = false
}

func (s *Stopwatch) Reset() {
	s.acc = 0
	s.lapMark = 0
	s.laps = nil
	if s.running {
		s.start = s.now()
	}
}

func (s *Stopwatch) Running() bool { return s.running }

func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.acc + s.now().Sub(s.start)
	}
	return s.acc
}

// Lap records and returns the time since the previous lap (or start).
func (s *Stopwatch) Lap() time.Duration {
	total := s.Elapsed()
	lap := total - s.lapMark
	s.lapMark = total
	s.laps = append(s.laps, lap)
	return lap
}

func (s *Stopwatch) Laps() []time.Duration {
	out := make([]time.Duration, len(s.laps))
	copy(out, s.laps)
	return out
}
