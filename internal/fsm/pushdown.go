package fsm

import "time"

// Pushdown keeps a stack of states. Pushing pauses (exits) the current top;
// popping exits the top and re-enters the one below it.
type Pushdown[C any] struct {
	ctx   C
	stack []State[C]
}

func NewPushdown[C any](ctx C) *Pushdown[C] {
	return &Pushdown[C]{ctx: ctx}
}

func (p *Pushdown[C]) Push(s State[C]) {
	if top := p.Top(); top != nil {
		top.Exit(p.ctx)
	}
	p.stack = append(p.stack, s)
	s.Enter(p.ctx)
}

// Pop removes the top state. It returns false on an empty stack.
func (p *Pushdown[C]) Pop() (State[C], bool) {
	if len(p.stack) == 0 {
		return nil, false
	}
	top := p.stack[len(p.stack)-1]
	top.Exit(p.ctx)
	p.stack[len(p.stack)-1] = nil
	p.stack = p.stack[:len(p.stack)-1]

	if below := p.Top(); below != nil {
		below.Enter(p.ctx)
	}
	return top, true
}

// Replace swaps the top state without touching the ones below.
func (p *Pushdown[C]) Replace(s State[C]) {
	if len(p.stack) == 0 {
		p.Push(s)
		return
	}
	p.stack[len(p.stack)-1].Exit(p.ctx)
	p.stack[len(p.stack)-1] = s
	s.Enter(p.ctx)
}

func (p *Pushdown[C]) Top() State[C] {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Pushdown[C]) Depth() int { return len(p.stack) }

// Update runs only the top state. A returned state replaces the top.
func (p *Pushdown[C]) Update(dt time.Duration) {
	top := p.Top()
	if top == nil {
		return
	}
	if next := top.Update(p.ctx, dt); next != nil {
		p.Replace(next)
	}
}
