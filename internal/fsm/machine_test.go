package fsm

import (
	"errors"
	"reflect"
	"testing"
)

type doorState string
type doorEvent string

const (
	closed doorState = "closed"
	open   doorState = "open"
	locked doorState = "locked"

	evOpen   doorEvent = "open"
	evClose  doorEvent = "close"
	evLock   doorEvent = "lock"
	evUnlock doorEvent = "unlock"
)

func newDoor() *Machine[doorState, doorEvent] {
	return NewMachine[doorState, doorEvent](closed).
		Permit(closed, evOpen, open).
		Permit(open, evClose, closed).
		Permit(closed, evLock, locked).
		Permit(locked, evUnlock, closed)
}

func TestMachine_FireFollowsTable(t *testing.T) {
	m := newDoor()

	steps := []struct {
		ev   doorEvent
		want doorState
	}{
		{evOpen, open},
		{evClose, closed},
		{evLock, locked},
		{evUnlock, closed},
	}
	for _, s := range steps {
		if err := m.Fire(s.ev); err != nil {
			t.Fatalf("Fire(%s): %v", s.ev, err)
		}
		if m.State() != s.want {
			t.Fatalf("after %s state = %s, want %s", s.ev, m.State(), s.want)
		}
	}
}

func TestMachine_InvalidTransition(t *testing.T) {
	m := newDoor()
	_ = m.Fire(evLock)

	if m.CanFire(evOpen) {
		t.Fatalf("locked door should not open")
	}
	err := m.Fire(evOpen)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if m.State() != locked {
		t.Fatalf("state changed on invalid fire")
	}
}

func TestMachine_HookOrderAndHistory(t *testing.T) {
	m := newDoor()
	var log []string

	m.OnExit(closed, func(tr Transition[doorState, doorEvent]) {
		log = append(log, "exit:"+string(tr.From))
	})
	m.OnEnter(open, func(tr Transition[doorState, doorEvent]) {
		log = append(log, "enter:"+string(tr.To))
	})

	if err := m.Fire(evOpen); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(log, []string{"exit:closed", "enter:open"}) {
		t.Fatalf("unexpected hook order %v", log)
	}

	m.SetHistoryLimit(2)
	_ = m.Fire(evClose)
	_ = m.Fire(evLock)

	h := m.History()
	if len(h) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(h))
	}
	if h[0].Event != evClose || h[1].To != locked {
		t.Fatalf("unexpected history %+v", h)
	}

	m.SetHistoryLimit(0)
	if len(m.History()) != 0 {
		t.Fatalf("expected history cleared")
	}
}
