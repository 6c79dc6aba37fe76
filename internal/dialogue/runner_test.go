package dialogue

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func loadInnkeeper(t *testing.T) *Runner {
	t.Helper()
	s, err := LoadScript(filepath.Join("testdata", "innkeeper.yaml"))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	r, err := NewRunner(s, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestRunner_LinesThenChoices(t *testing.T) {
	r := loadInnkeeper(t)

	if r.Speaker() != "Innkeeper" || r.Line() != "Welcome, traveler." {
		t.Fatalf("unexpected opening %q: %q", r.Speaker(), r.Line())
	}
	if r.AwaitingChoice() {
		t.Fatalf("choices must wait for the last line")
	}
	if err := r.Choose(0); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice before last line, got %v", err)
	}

	r.Advance()
	if r.Line() != "What can I get you?" {
		t.Fatalf("unexpected line %q", r.Line())
	}
	if done := r.Advance(); done {
		t.Fatalf("should wait on choice, not finish")
	}
	if !r.AwaitingChoice() {
		t.Fatalf("expected pending choice")
	}
	if got := len(r.AvailableChoices()); got != 3 {
		t.Fatalf("expected gated choice hidden, got %d choices", got)
	}
}

func TestRunner_FlagsUnlockChoices(t *testing.T) {
	r := loadInnkeeper(t)
	r.Advance()
	r.Advance()

	if err := r.Choose(1); err != nil {
		t.Fatalf("Choose(rumor): %v", err)
	}
	if r.Current().ID != "rumor" {
		t.Fatalf("expected rumor node, got %q", r.Current().ID)
	}
	if !reflect.DeepEqual(r.Flags(), []string{"knows_cellar"}) {
		t.Fatalf("Flags = %v", r.Flags())
	}

	r.Advance() // rumor -> greet via next
	if r.Current().ID != "greet" {
		t.Fatalf("expected back at greet, got %q", r.Current().ID)
	}
	r.Advance()
	r.Advance()

	choices := r.AvailableChoices()
	if len(choices) != 4 || choices[2].Next != "cellar" {
		t.Fatalf("expected cellar choice unlocked, got %+v", choices)
	}
	if err := r.Choose(2); err != nil {
		t.Fatalf("Choose(cellar): %v", err)
	}
	if r.Line() != "Here. Don't let the rats out." {
		t.Fatalf("unexpected line %q", r.Line())
	}
	if done := r.Advance(); !done || !r.Finished() {
		t.Fatalf("expected conversation to finish")
	}
	if !r.Advance() {
		t.Fatalf("Advance after finish keeps reporting done")
	}
}

func TestRunner_ChoiceWithoutNextEnds(t *testing.T) {
	r := loadInnkeeper(t)
	r.Advance()
	r.Advance()

	if err := r.Choose(5); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected out-of-range error, got %v", err)
	}
	if err := r.Choose(2); err != nil {
		t.Fatalf("Choose(nothing): %v", err)
	}
	if !r.Finished() {
		t.Fatalf("expected finished")
	}
}

func TestRunner_NegatedRequirement(t *testing.T) {
	s := &Script{
		ID:    "neg",
		Start: "a",
		Nodes: map[string]Node{
			"a": {ID: "a", Lines: []string{"hi"}, Choices: []Choice{
				{Text: "first time", Requires: "!met", Next: "b"},
				{Text: "again", Requires: "met", Next: "b"},
			}},
			"b": {ID: "b", Lines: []string{"bye"}},
		},
	}
	r, err := NewRunner(s, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if got := r.AvailableChoices(); len(got) != 1 || got[0].Text != "first time" {
		t.Fatalf("unexpected choices %+v", got)
	}
	r.SetFlag("met", true)
	if got := r.AvailableChoices(); len(got) != 1 || got[0].Text != "again" {
		t.Fatalf("unexpected choices %+v", got)
	}
}

func TestNewRunner_RejectsInvalidScript(t *testing.T) {
	_, err := NewRunner(&Script{ID: "x", Start: "missing"}, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRunner_TextFillsVars(t *testing.T) {
	s := &Script{
		ID:    "greet",
		Start: "a",
		Nodes: map[string]Node{
			"a": {ID: "a", Lines: []string{"Welcome, {{player}}.", "Who is {{stranger}}?"}},
		},
	}
	r, err := NewRunner(s, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	r.SetVar("player", "Ada")
	if r.Text() != "Welcome, Ada." {
		t.Fatalf("unexpected text %q", r.Text())
	}
	r.Advance()
	if r.Text() != "Who is {{stranger}}?" {
		t.Fatalf("expected unrendered line on missing var, got %q", r.Text())
	}
}
