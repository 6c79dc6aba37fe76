// Package dialogue models branching conversations: nodes of lines spoken by
// one speaker, followed by either a fixed next node or a set of choices.
// Choices may require flags that earlier nodes set.
package dialogue

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrInvalidChoice = errors.New("invalid choice")
)

type Choice struct {
	Text string
	Next string
	// Requires names a flag that must be set for the choice to be offered.
	// A leading '!' requires the flag to be unset.
	Requires string
}

type Node struct {
	ID       string
	Speaker  string
	Lines    []string
	Choices  []Choice
	Next     string
	SetFlags []string
}

// End reports whether the conversation stops after this node.
func (n Node) End() bool { return n.Next == "" && len(n.Choices) == 0 }

type Script struct {
	ID    string
	Title string
	Start string
	Nodes map[string]Node
}

// Validate checks that the start node exists and every reference resolves.
// All problems are reported together, sorted.
func (s *Script) Validate() error {
	var problems []string

	if strings.TrimSpace(s.ID) == "" {
		problems = append(problems, "script id is required")
	}
	if _, ok := s.Nodes[s.Start]; !ok {
		problems = append(problems, fmt.Sprintf("start node %q: %v", s.Start, ErrUnknownNode))
	}

	for id, n := range s.Nodes {
		if n.Next != "" && len(n.Choices) > 0 {
			problems = append(problems, fmt.Sprintf("node %q: has both next and choices", id))
		}
		if n.Next != "" {
			if _, ok := s.Nodes[n.Next]; !ok {
				problems = append(problems, fmt.Sprintf("node %q: next %q: %v", id, n.Next, ErrUnknownNode))
			}
		}
		for i, c := range n.Choices {
			if strings.TrimSpace(c.Text) == "" {
				problems = append(problems, fmt.Sprintf("node %q: choices[%d]: text is required", id, i))
			}
			if c.Next == "" {
				continue
			}
			if _, ok := s.Nodes[c.Next]; !ok {
				problems = append(problems, fmt.Sprintf("node %q: choices[%d] next %q: %v", id, i, c.Next, ErrUnknownNode))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

// ValidationError lists every problem found in a script.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid dialogue script: " + strings.Join(e.Problems, "; ")
}

// Reachable returns the IDs reachable from the start node, sorted.
func (s *Script) Reachable() []string {
	seen := map[string]bool{}
	stack := []string{s.Start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := s.Nodes[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		if n.Next != "" {
			stack = append(stack, n.Next)
		}
		for _, c := range n.Choices {
			if c.Next != "" {
				stack = append(stack, c.Next)
			}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
