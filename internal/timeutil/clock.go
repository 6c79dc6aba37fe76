// Package timeutil tracks game-style time: per-frame deltas, stopwatches,
// countdown timers and a small timestamped printer.
package timeutil

import "time"

const fpsWindow = 60

// Clock measures the scaled time between successive Tick calls.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool

	scale   float64
	paused  bool
	elapsed time.Duration
	frames  uint64

	deltas []time.Duration
	next   int
}

// NewClock returns a clock reading time from now (time.Now when nil).
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, scale: 1, deltas: make([]time.Duration, 0, fpsWindow)}
}

// Tick advances the clock and returns the scaled delta since the previous
// tick. The first tick and ticks while paused return 0.
func (c *Clock) Tick() time.Duration {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}

	raw := t.Sub(c.last)
	c.last = t
	if raw < 0 {
		raw = 0
	}

	c.recordFrame(raw)
	if c.paused {
		return 0
	}

	dt := time.Duration(float64(raw) * c.scale)
	c.elapsed += dt
	c.frames++
	return dt
}

func (c *Clock) recordFrame(raw time.Duration) {
	if len(c.deltas) < fpsWindow {
		c.deltas = append(c.deltas, raw)
		return
	}
	c.deltas[c.next] = raw
	c.next = (c.next + 1) % fpsWindow
}

// Elapsed is the total scaled time accumulated by Tick.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }

// Frames counts unpaused ticks after the first.
func (c *Clock) Frames() uint64 { return c.frames }

func (c *Clock) Scale() float64 { return c.scale }

// SetScale sets the time scale. Negative values are clamped to 0.
func (c *Clock) SetScale(s float64) {
	if s < 0 {
		s = 0
	}
	c.scale = s
}

func (c *Clock) Pause()       { c.paused = true }
func (c *Clock) Resume()      { c.paused = false }
func (c *Clock) Paused() bool { return c.paused }

// FPS averages unscaled frame times over the last 60 ticks.
func (c *Clock) FPS() float64 {
	if len(c.deltas) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range c.deltas {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(len(c.deltas)) / total.Seconds()
}
