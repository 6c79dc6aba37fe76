package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kylepfurey/FureyLib-sub005/internal/dialogue"
	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/logger"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/savefile"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/workspacefinder"
	"github.com/kylepfurey/FureyLib-sub005/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	saves   ports.SaveStore
	scripts ports.ScriptLoader
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	store, err := savefile.NewStore(root, cfg, savefile.WithLogger(logger.Component("savefile")))
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:    root,
		cfg:     cfg,
		saves:   store,
		scripts: dialogue.NewLoader(),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `fureylib init`): %w", wd, err)
	}
	return root, nil
}

// resolveScriptPath accepts a path, a file name under the dialogue dir, or
// a bare script name.
func resolveScriptPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("script is required")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	dialogueDir := filepath.Join(ws.root, ws.cfg.Dialogue.Dir)

	if hasYAMLExt(in) {
		p := filepath.Join(dialogueDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dialogueDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	// As a last resort: match by script id.
	paths, err := fileio.List(dialogueDir, ".yaml", ".yml")
	if err == nil {
		for _, p := range paths {
			s, lerr := ws.scripts.LoadScript(p)
			if lerr == nil && strings.EqualFold(s.ID, in) {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("script %q not found in %q", in, dialogueDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
