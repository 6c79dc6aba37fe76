package fsm

import "time"

// State is one state of a StateMachine or Pushdown. C is the shared context
// the states act on (an entity, a game session, ...).
type State[C any] interface {
	Enter(ctx C)
	// Update returns the state to switch to, or nil to stay.
	Update(ctx C, dt time.Duration) State[C]
	Exit(ctx C)
}

// StateMachine runs one State at a time.
type StateMachine[C any] struct {
	ctx     C
	current State[C]
}

func NewStateMachine[C any](ctx C, initial State[C]) *StateMachine[C] {
	sm := &StateMachine[C]{ctx: ctx}
	if initial != nil {
		sm.Change(initial)
	}
	return sm
}

func (sm *StateMachine[C]) Current() State[C] { return sm.current }

// Change exits the current state and enters next. A nil next leaves the
// machine without a state.
func (sm *StateMachine[C]) Change(next State[C]) {
	if sm.current != nil {
		sm.current.Exit(sm.ctx)
	}
	sm.current = next
	if next != nil {
		next.Enter(sm.ctx)
	}
}

// Update runs the current state and follows a returned transition. At most
// one transition happens per call.
func (sm *StateMachine[C]) Update(dt time.Duration) {
	if sm.current == nil {
		return
	}
	if next := sm.current.Update(sm.ctx, dt); next != nil {
		sm.Change(next)
	}
}
