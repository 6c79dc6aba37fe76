package domain

import "time"

// Config represents the FureyLib workspace configuration loaded from fureylib.yaml.
type Config struct {
	Saves    SavesConfig
	Net      NetConfig
	Dialogue DialogueConfig
}

type SavesConfig struct {
	Dir    string
	Format string // json|yaml|toml
}

type NetConfig struct {
	Addr string
	// TickRate is how many snapshots per second the demo client sends.
	TickRate int
	// TransformRate caps accepted transform updates per client per second.
	TransformRate      int
	InterpolationDelay time.Duration
}

type DialogueConfig struct {
	Dir string
}

// DefaultConfig provides sane defaults if fureylib.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Saves: SavesConfig{
			Dir:    "saves",
			Format: "json",
		},
		Net: NetConfig{
			Addr:               ":7777",
			TickRate:           20,
			TransformRate:      30,
			InterpolationDelay: 100 * time.Millisecond,
		},
		Dialogue: DialogueConfig{
			Dir: "dialogue",
		},
	}
}

// WorkspaceSpec describes where a workspace should be scaffolded.
type WorkspaceSpec struct {
	Root string
}
