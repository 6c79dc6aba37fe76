package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
	"github.com/kylepfurey/FureyLib-sub005/internal/ports"
)

// DialogueReport is the outcome of checking one script file.
type DialogueReport struct {
	Path     string
	ScriptID string
	Nodes    int
	// Problems make the script unplayable.
	Problems []string
	// Unreachable nodes can never be entered from the start node.
	Unreachable []string
}

func (r DialogueReport) OK() bool { return len(r.Problems) == 0 }

type ValidateDialogue struct {
	scripts ports.ScriptLoader
}

func NewValidateDialogue(sl ports.ScriptLoader) *ValidateDialogue {
	return &ValidateDialogue{scripts: sl}
}

// Execute loads and checks each script without playing it. Besides the
// structural checks of Script.Validate, every line must render with the
// given vars (e.g. {{player}}). Load failures are reported per file.
func (uc *ValidateDialogue) Execute(ctx context.Context, paths []string, vars map[string]string) ([]DialogueReport, error) {
	reports := make([]DialogueReport, 0, len(paths))

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		rep := DialogueReport{Path: p}
		s, err := uc.scripts.LoadScript(p)
		var loadVE *dialogue.ValidationError
		if err != nil && (s == nil || !errors.As(err, &loadVE)) {
			rep.Problems = []string{err.Error()}
			reports = append(reports, rep)
			continue
		}
		rep.ScriptID = s.ID
		rep.Nodes = len(s.Nodes)

		if err := s.Validate(); err != nil {
			var ve *dialogue.ValidationError
			if errors.As(err, &ve) {
				rep.Problems = append(rep.Problems, ve.Problems...)
			} else {
				rep.Problems = append(rep.Problems, err.Error())
			}
		}

		for _, id := range sortedNodeIDs(s) {
			for i, line := range s.Nodes[id].Lines {
				if _, err := dialogue.Render(line, vars); err != nil {
					rep.Problems = append(rep.Problems, fmt.Sprintf("node %q line %d: %v", id, i+1, err))
				}
			}
		}

		reachable := s.Reachable()
		for _, id := range sortedNodeIDs(s) {
			if !slices.Contains(reachable, id) {
				rep.Unreachable = append(rep.Unreachable, id)
			}
		}

		reports = append(reports, rep)
	}

	return reports, nil
}

func sortedNodeIDs(s *dialogue.Script) []string {
	ids := make([]string, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
