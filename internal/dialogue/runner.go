package dialogue

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/kylepfurey/FureyLib-sub005/internal/container"
)

// Runner walks a Script. Lines of the current node are handed out one at a
// time by Advance; once they run out the runner either follows Next, waits
// for Choose, or finishes.
type Runner struct {
	script  *Script
	node    Node
	pending *container.Queue[string]
	line    string
	flags   map[string]bool
	vars    map[string]string
	done    bool
	log     *slog.Logger
}

func NewRunner(s *Script, log *slog.Logger) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	r := &Runner{script: s, flags: map[string]bool{}, vars: map[string]string{}, log: log}
	r.enter(s.Start)
	return r, nil
}

func (r *Runner) enter(id string) {
	n := r.script.Nodes[id]
	r.node = n
	r.pending = container.NewQueue(n.Lines...)
	for _, f := range n.SetFlags {
		r.flags[f] = true
	}
	r.line, _ = r.pending.Dequeue()
	r.log.Debug("dialogue.enter_node", "script", r.script.ID, "node", id, "lines", len(n.Lines))
}

func (r *Runner) Current() Node { return r.node }

func (r *Runner) Speaker() string { return r.node.Speaker }

// Line is the current line as written in the script.
func (r *Runner) Line() string { return r.line }

// Text is the current line with {{name}} placeholders filled from SetVar.
// A line that cannot be rendered is returned as written.
func (r *Runner) Text() string {
	out, err := Render(r.line, r.vars)
	if err != nil {
		r.log.Warn("dialogue.render_failed", "script", r.script.ID, "node", r.node.ID, "err", err)
		return r.line
	}
	return out
}

func (r *Runner) SetVar(name, value string) { r.vars[name] = value }

func (r *Runner) Finished() bool { return r.done }

// AwaitingChoice reports whether the runner is blocked on Choose.
func (r *Runner) AwaitingChoice() bool {
	return !r.done && r.pending.IsEmpty() && len(r.AvailableChoices()) > 0
}

// Advance moves to the next line. It returns true once the conversation
// has finished. While a choice is pending, Advance does nothing.
func (r *Runner) Advance() bool {
	if r.done {
		return true
	}
	if next, ok := r.pending.Dequeue(); ok {
		r.line = next
		return false
	}
	if r.AwaitingChoice() {
		return false
	}
	if r.node.Next != "" {
		r.enter(r.node.Next)
		return false
	}

	r.done = true
	r.line = ""
	r.log.Debug("dialogue.finished", "script", r.script.ID, "node", r.node.ID)
	return true
}

// AvailableChoices filters the node's choices by their flag requirements.
// Choices are only offered after the node's last line.
func (r *Runner) AvailableChoices() []Choice {
	var out []Choice
	for _, c := range r.node.Choices {
		if r.allowed(c.Requires) {
			out = append(out, c)
		}
	}
	return out
}

// Choose picks the i-th available choice.
func (r *Runner) Choose(i int) error {
	if !r.AwaitingChoice() {
		return fmt.Errorf("choose %d at node %q: no choice pending: %w", i, r.node.ID, ErrInvalidChoice)
	}
	choices := r.AvailableChoices()
	if i < 0 || i >= len(choices) {
		return fmt.Errorf("choose %d at node %q: %d choice(s) available: %w", i, r.node.ID, len(choices), ErrInvalidChoice)
	}

	c := choices[i]
	r.log.Debug("dialogue.choice", "script", r.script.ID, "node", r.node.ID, "choice", c.Text)
	if c.Next == "" {
		r.done = true
		r.line = ""
		return nil
	}
	r.enter(c.Next)
	return nil
}

func (r *Runner) SetFlag(name string, v bool) {
	if v {
		r.flags[name] = true
		return
	}
	delete(r.flags, name)
}

// Flags returns the set flags, sorted.
func (r *Runner) Flags() []string {
	out := make([]string, 0, len(r.flags))
	for f := range r.flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (r *Runner) allowed(req string) bool {
	req = strings.TrimSpace(req)
	if req == "" {
		return true
	}
	if strings.HasPrefix(req, "!") {
		return !r.flags[strings.TrimPrefix(req, "!")]
	}
	return r.flags[req]
}
