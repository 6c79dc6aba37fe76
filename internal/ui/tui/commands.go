package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/workspacefinder"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, err: findErr}
		}
		return workspaceRefreshedMsg{cwd: wd, found: true, root: root}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.InitWorkspace == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("InitWorkspace is nil")}
		}
		return initWorkspaceDoneMsg{root: root, err: deps.InitWorkspace.Execute(root, false)}
	}
}

// cmdListScripts lists the YAML scripts in the workspace dialogue dir.
func cmdListScripts(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return scriptsListedMsg{root: root, err: err}
		}

		paths, err := fileio.List(filepath.Join(root, cfg.Dialogue.Dir), ".yaml", ".yml")
		if domain.IsKind(err, domain.KindNotFound) {
			return scriptsListedMsg{root: root}
		}
		return scriptsListedMsg{root: root, paths: paths, err: err}
	}
}

func cmdLoadScript(deps Deps, path string) tea.Cmd {
	return func() tea.Msg {
		if deps.Scripts == nil {
			return scriptLoadedMsg{path: path, err: errors.New("ScriptLoader is nil")}
		}
		s, err := deps.Scripts.LoadScript(path)
		return scriptLoadedMsg{path: path, script: s, err: err}
	}
}
