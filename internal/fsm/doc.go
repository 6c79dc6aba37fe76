// Package fsm holds three state-machine templates:
//
//   - Machine: a table of permitted (state, event) -> state transitions with
//     enter/exit hooks, for enum-like states.
//   - StateMachine: state objects that decide their own successor in Update.
//   - Pushdown: a stack of state objects where only the top one updates.
//
// All three are driven explicitly by the caller; nothing runs in the
// background.
package fsm
