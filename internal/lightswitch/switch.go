// Package lightswitch is a small light-switch template: a light that can be
// toggled, broken and repaired, with an optional flicker while broken.
package lightswitch

import (
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/fsm"
	"github.com/kylepfurey/FureyLib-sub005/internal/timeutil"
)

type State string

const (
	Off    State = "off"
	On     State = "on"
	Broken State = "broken"
)

type Event string

const (
	Toggle Event = "toggle"
	Break  Event = "break"
	Repair Event = "repair"
)

// Switch drives a light. Lit reports what the light actually shows, which
// differs from the state while a broken light flickers.
type Switch struct {
	m         *fsm.Machine[State, Event]
	flicker   *timeutil.Timer
	lit       bool
	observers []func(lit bool)
}

type Option func(*Switch)

// WithFlicker makes a broken light blink with the given period.
func WithFlicker(period time.Duration) Option {
	return func(s *Switch) {
		s.flicker = timeutil.NewTimer(period, true, func() { s.setLit(!s.lit) })
		s.flicker.Pause()
	}
}

func New(startOn bool, opts ...Option) *Switch {
	initial := Off
	if startOn {
		initial = On
	}

	s := &Switch{lit: startOn}
	s.m = fsm.NewMachine[State, Event](initial).
		Permit(Off, Toggle, On).
		Permit(On, Toggle, Off).
		Permit(Off, Break, Broken).
		Permit(On, Break, Broken).
		Permit(Broken, Repair, Off)

	s.m.OnEnter(On, func(fsm.Transition[State, Event]) { s.setLit(true) })
	s.m.OnEnter(Off, func(fsm.Transition[State, Event]) { s.setLit(false) })
	s.m.OnEnter(Broken, func(fsm.Transition[State, Event]) {
		s.setLit(false)
		if s.flicker != nil {
			s.flicker.Restart()
		}
	})
	s.m.OnExit(Broken, func(fsm.Transition[State, Event]) {
		if s.flicker != nil {
			s.flicker.Pause()
		}
	})

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to be called whenever Lit changes.
func (s *Switch) OnChange(fn func(lit bool)) {
	s.observers = append(s.observers, fn)
}

// Toggle flips the light. It reports false when the light is broken.
func (s *Switch) Toggle() bool { return s.m.Fire(Toggle) == nil }

func (s *Switch) Break() bool { return s.m.Fire(Break) == nil }

// Repair fixes a broken light; it comes back off.
func (s *Switch) Repair() bool { return s.m.Fire(Repair) == nil }

func (s *Switch) State() State { return s.m.State() }

func (s *Switch) IsOn() bool { return s.m.State() == On }

func (s *Switch) Lit() bool { return s.lit }

// Update advances the flicker.
func (s *Switch) Update(dt time.Duration) {
	if s.flicker != nil {
		s.flicker.Update(dt)
	}
}

func (s *Switch) setLit(v bool) {
	if s.lit == v {
		return
	}
	s.lit = v
	for _, fn := range s.observers {
		fn(v)
	}
}
