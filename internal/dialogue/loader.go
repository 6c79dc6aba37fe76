package dialogue

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// Loader reads scripts from YAML files.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

func (l *Loader) LoadScript(path string) (*Script, error) {
	return LoadScript(path)
}

// LoadScript reads, maps and validates a script. A script that parses but
// fails Validate is returned together with its *ValidationError so callers
// can still report on it.
func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "dialogue.load", Kind: kind, Path: path, Err: err}
	}
	s, err := ParseScript(b)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return nil, err
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ParseScript decodes YAML. The script ID may be left empty for the caller
// to fill in.
func ParseScript(b []byte) (*Script, error) {
	var dto yamlScript
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, &domain.OpError{Op: "dialogue.parse", Kind: domain.KindInvalidConfig, Err: err}
	}
	return mapScript(dto)
}

func mapScript(y yamlScript) (*Script, error) {
	s := &Script{
		ID:    strings.TrimSpace(y.ID),
		Title: y.Title,
		Start: strings.TrimSpace(y.Start),
		Nodes: make(map[string]Node, len(y.Nodes)),
	}

	for i, n := range y.Nodes {
		id := strings.TrimSpace(n.ID)
		if id == "" {
			return nil, invalidField(fmt.Sprintf("nodes[%d].id", i), "node id is required")
		}
		if _, dup := s.Nodes[id]; dup {
			return nil, invalidField(fmt.Sprintf("nodes[%d].id", i), fmt.Sprintf("duplicate node id %q", id))
		}

		node := Node{
			ID:       id,
			Speaker:  n.Speaker,
			Lines:    n.Lines,
			Next:     strings.TrimSpace(n.Next),
			SetFlags: n.Set,
		}
		for _, c := range n.Choices {
			node.Choices = append(node.Choices, Choice{
				Text:     c.Text,
				Next:     strings.TrimSpace(c.Next),
				Requires: strings.TrimSpace(c.Requires),
			})
		}
		s.Nodes[id] = node
	}

	if s.Start == "" && len(y.Nodes) > 0 {
		s.Start = strings.TrimSpace(y.Nodes[0].ID)
	}
	return s, nil
}

func invalidField(field, msg string) error {
	return &domain.OpError{
		Op:   "dialogue.map",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
