package tui

import (
	"log/slog"

	"github.com/kylepfurey/FureyLib-sub005/internal/ports"
	"github.com/kylepfurey/FureyLib-sub005/internal/usecase"
)

type Deps struct {
	WorkspaceLocator ports.WorkspaceLocator
	InitWorkspace    *usecase.InitWorkspace
	Scripts          ports.ScriptLoader

	// Vars fill {{name}} placeholders in dialogue lines.
	Vars map[string]string

	Logger *slog.Logger
	Debug  bool
}
