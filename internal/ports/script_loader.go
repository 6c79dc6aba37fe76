package ports

import "github.com/kylepfurey/FureyLib-sub005/internal/dialogue"

// ScriptLoader loads dialogue scripts from a source (e.g., filesystem).
type ScriptLoader interface {
	LoadScript(path string) (*dialogue.Script, error)
}
