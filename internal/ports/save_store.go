package ports

import "github.com/kylepfurey/FureyLib-sub005/internal/domain"

// SaveStore persists save slots (e.g., on the filesystem).
type SaveStore interface {
	Save(slot string, data domain.SaveData) (path string, err error)
	Load(slot string) (domain.SaveData, error)
	LoadFile(slot string) (domain.SaveFile, error)
	Delete(slot string) bool
	List() ([]domain.SlotRef, error)
}
