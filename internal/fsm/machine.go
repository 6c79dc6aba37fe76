package fsm

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid transition")

type transitionKey[S, E comparable] struct {
	from  S
	event E
}

// Transition is one recorded state change.
type Transition[S, E comparable] struct {
	From  S
	Event E
	To    S
}

// Machine is a table-driven state machine.
type Machine[S, E comparable] struct {
	state   S
	table   map[transitionKey[S, E]]S
	onEnter map[S][]func(Transition[S, E])
	onExit  map[S][]func(Transition[S, E])

	history    []Transition[S, E]
	maxHistory int
}

func NewMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		state:      initial,
		table:      map[transitionKey[S, E]]S{},
		onEnter:    map[S][]func(Transition[S, E]){},
		onExit:     map[S][]func(Transition[S, E]){},
		maxHistory: 64,
	}
}

// Permit allows event to move the machine from one state to another.
// A later Permit for the same (from, event) replaces the earlier one.
func (m *Machine[S, E]) Permit(from S, event E, to S) *Machine[S, E] {
	m.table[transitionKey[S, E]{from, event}] = to
	return m
}

func (m *Machine[S, E]) OnEnter(s S, fn func(Transition[S, E])) *Machine[S, E] {
	m.onEnter[s] = append(m.onEnter[s], fn)
	return m
}

func (m *Machine[S, E]) OnExit(s S, fn func(Transition[S, E])) *Machine[S, E] {
	m.onExit[s] = append(m.onExit[s], fn)
	return m
}

// SetHistoryLimit bounds History; n <= 0 disables recording.
func (m *Machine[S, E]) SetHistoryLimit(n int) {
	m.maxHistory = n
	m.trimHistory()
}

func (m *Machine[S, E]) State() S { return m.state }

func (m *Machine[S, E]) CanFire(event E) bool {
	_, ok := m.table[transitionKey[S, E]{m.state, event}]
	return ok
}

// Fire applies event. Exit hooks of the current state run before the state
// changes; enter hooks of the new state run after. Self-transitions run
// both.
func (m *Machine[S, E]) Fire(event E) error {
	to, ok := m.table[transitionKey[S, E]{m.state, event}]
	if !ok {
		return fmt.Errorf("fire %v in state %v: %w", event, m.state, ErrInvalidTransition)
	}

	tr := Transition[S, E]{From: m.state, Event: event, To: to}
	for _, fn := range m.onExit[tr.From] {
		fn(tr)
	}
	m.state = to
	for _, fn := range m.onEnter[to] {
		fn(tr)
	}

	if m.maxHistory > 0 {
		m.history = append(m.history, tr)
		m.trimHistory()
	}
	return nil
}

// History returns the most recent transitions, oldest first.
func (m *Machine[S, E]) History() []Transition[S, E] {
	out := make([]Transition[S, E], len(m.history))
	copy(out, m.history)
	return out
}

func (m *Machine[S, E]) trimHistory() {
	if m.maxHistory <= 0 {
		m.history = nil
		return
	}
	if over := len(m.history) - m.maxHistory; over > 0 {
		m.history = append(m.history[:0], m.history[over:]...)
	}
}
