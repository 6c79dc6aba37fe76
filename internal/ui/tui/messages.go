package tui

import "github.com/kylepfurey/FureyLib-sub005/internal/dialogue"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type scriptsListedMsg struct {
	root  string
	paths []string
	err   error
}

type scriptLoadedMsg struct {
	path   string
	script *dialogue.Script
	err    error
}
