package ports

import "github.com/kylepfurey/FureyLib-sub005/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
