package timeutil

import "time"

// Timer counts down as Update is called and invokes OnDone on reaching zero.
type Timer struct {
	Duration time.Duration
	Repeat   bool
	OnDone   func()

	remaining time.Duration
	running   bool
	fired     int
}

func NewTimer(d time.Duration, repeat bool, onDone func()) *Timer {
	return &Timer{Duration: d, Repeat: repeat, OnDone: onDone, remaining: d, running: true}
}

// Update advances the timer by dt. A repeating timer may fire more than once
// in a single update when dt spans several periods.
func (t *Timer) Update(dt time.Duration) {
	if !t.running || dt <= 0 {
		return
	}
	t.remaining -= dt
	for t.remaining <= 0 && t.running {
		t.fired++
		if t.OnDone != nil {
			t.OnDone()
		}
		if !t.Repeat || t.Duration <= 0 {
			t.remaining = 0
			t.running = false
			return
		}
		t.remaining += t.Duration
	}
}

func (t *Timer) Remaining() time.Duration { return t.remaining }

func (t *Timer) Running() bool { return t.running }

// Fired counts how many times the timer completed.
func (t *Timer) Fired() int { return t.fired }

// Progress is the completed fraction of the current period, in [0,1].
func (t *Timer) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := 1 - float64(t.remaining)/float64(t.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

func (t *Timer) Pause()  { t.running = false }
func (t *Timer) Resume() { t.running = t.remaining > 0 || t.Repeat }

// Restart rewinds the timer to its full duration and resumes it.
func (t *Timer) Restart() {
	t.remaining = t.Duration
	t.running = true
}
