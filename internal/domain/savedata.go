package domain

import "time"

// SaveData is the payload persisted in a save slot.
type SaveData struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Data string `json:"data" yaml:"data" toml:"data"`
}

// SaveFile is the on-disk envelope around SaveData.
type SaveFile struct {
	Version int       `json:"version" yaml:"version" toml:"version"`
	SavedAt time.Time `json:"saved_at" yaml:"saved_at" toml:"saved_at"`
	Data    SaveData  `json:"data" yaml:"data" toml:"data"`
}

// SaveFileVersion is the current envelope version.
const SaveFileVersion = 1

// SlotRef points at a save slot on disk.
type SlotRef struct {
	Slot    string
	Path    string
	Format  string
	SavedAt time.Time
}
