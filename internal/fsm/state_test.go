package fsm

import (
	"reflect"
	"testing"
	"time"
)

type guard struct {
	log       []string
	seePlayer bool
	patrolled time.Duration
}

type patrol struct{}

func (patrol) Enter(g *guard) { g.log = append(g.log, "enter patrol") }
func (patrol) Exit(g *guard)  { g.log = append(g.log, "exit patrol") }
func (patrol) Update(g *guard, dt time.Duration) State[*guard] {
	g.patrolled += dt
	if g.seePlayer {
		return chase{}
	}
	return nil
}

type chase struct{}

func (chase) Enter(g *guard) { g.log = append(g.log, "enter chase") }
func (chase) Exit(g *guard)  { g.log = append(g.log, "exit chase") }
func (chase) Update(g *guard, _ time.Duration) State[*guard] {
	if !g.seePlayer {
		return patrol{}
	}
	return nil
}

func TestStateMachine_Transitions(t *testing.T) {
	g := &guard{}
	sm := NewStateMachine[*guard](g, patrol{})

	sm.Update(time.Second)
	if _, ok := sm.Current().(patrol); !ok {
		t.Fatalf("expected patrol")
	}
	if g.patrolled != time.Second {
		t.Fatalf("patrol did not run")
	}

	g.seePlayer = true
	sm.Update(time.Second)
	if _, ok := sm.Current().(chase); !ok {
		t.Fatalf("expected chase")
	}

	g.seePlayer = false
	sm.Update(time.Second)

	want := []string{"enter patrol", "exit patrol", "enter chase", "exit chase", "enter patrol"}
	if !reflect.DeepEqual(g.log, want) {
		t.Fatalf("log = %v, want %v", g.log, want)
	}

	sm.Change(nil)
	sm.Update(time.Second)
	if sm.Current() != nil {
		t.Fatalf("expected no state")
	}
}

type screen struct {
	name string
	next State[*[]string]
}

func (s *screen) Enter(l *[]string) { *l = append(*l, "+"+s.name) }
func (s *screen) Exit(l *[]string)  { *l = append(*l, "-"+s.name) }
func (s *screen) Update(_ *[]string, _ time.Duration) State[*[]string] {
	n := s.next
	s.next = nil
	return n
}

func TestPushdown_StackDiscipline(t *testing.T) {
	var log []string
	p := NewPushdown[*[]string](&log)

	if _, ok := p.Pop(); ok {
		t.Fatalf("pop on empty stack should fail")
	}

	game := &screen{name: "game"}
	pause := &screen{name: "pause"}
	p.Push(game)
	p.Push(pause)
	if p.Depth() != 2 || p.Top() != State[*[]string](pause) {
		t.Fatalf("unexpected stack after pushes")
	}

	pause.next = &screen{name: "options"}
	p.Update(0)
	if p.Depth() != 2 {
		t.Fatalf("Update replace should keep depth, got %d", p.Depth())
	}

	if _, ok := p.Pop(); !ok {
		t.Fatalf("expected pop")
	}
	if p.Top() != State[*[]string](game) {
		t.Fatalf("expected game on top")
	}

	want := []string{"+game", "-game", "+pause", "-pause", "+options", "-options", "+game"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("log = %v, want %v", log, want)
	}

	p.Replace(&screen{name: "credits"})
	if p.Depth() != 1 {
		t.Fatalf("Replace should not change depth")
	}
}
