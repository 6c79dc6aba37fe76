package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "ws")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Partial config (only saves.format)
	root := writeConfig(t, "fureylib:\n  saves:\n    format: toml\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Saves.Format != "toml" {
		t.Fatalf("expected format=toml, got=%s", cfg.Saves.Format)
	}
	if cfg.Saves.Dir != "saves" {
		t.Fatalf("expected saves dir=saves, got=%s", cfg.Saves.Dir)
	}
	if cfg.Net.Addr != ":7777" || cfg.Net.TickRate != 20 || cfg.Net.TransformRate != 30 {
		t.Fatalf("expected default net config, got=%+v", cfg.Net)
	}
	if cfg.Net.InterpolationDelay != 100*time.Millisecond {
		t.Fatalf("expected default delay, got=%s", cfg.Net.InterpolationDelay)
	}
	if cfg.Dialogue.Dir != "dialogue" {
		t.Fatalf("expected dialogue dir=dialogue, got=%s", cfg.Dialogue.Dir)
	}
}

func TestLoadConfig_FullConfig(t *testing.T) {
	root := writeConfig(t, `fureylib:
  saves: { dir: data/saves, format: yaml }
  net: { addr: "127.0.0.1:9000", tick_rate: 10, transform_rate: 0, interpolation_delay: 250ms }
  dialogue: { dir: scripts }
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	want := domain.Config{
		Saves:    domain.SavesConfig{Dir: "data/saves", Format: "yaml"},
		Net:      domain.NetConfig{Addr: "127.0.0.1:9000", TickRate: 10, TransformRate: 0, InterpolationDelay: 250 * time.Millisecond},
		Dialogue: domain.DialogueConfig{Dir: "scripts"},
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"format":   "fureylib:\n  saves:\n    format: xml\n",
		"tick":     "fureylib:\n  net:\n    tick_rate: 0\n",
		"rate":     "fureylib:\n  net:\n    transform_rate: -1\n",
		"delay":    "fureylib:\n  net:\n    interpolation_delay: soon\n",
		"bad yaml": "fureylib: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}
