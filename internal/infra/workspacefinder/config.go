package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

// LoadConfig loads fureylib.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if err := apply(&cfg, y); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return cfg, nil
}

// apply lays parsed values over defaults.
func apply(cfg *domain.Config, y yamlConfig) error {
	f := y.FureyLib

	if f.Saves.Dir != "" {
		cfg.Saves.Dir = f.Saves.Dir
	}
	if f.Saves.Format != "" {
		format := strings.ToLower(strings.TrimSpace(f.Saves.Format))
		switch format {
		case "json", "yaml", "yml", "toml":
			cfg.Saves.Format = format
		default:
			return invalidField("fureylib.saves.format", fmt.Sprintf("unsupported format %q", f.Saves.Format))
		}
	}

	if f.Net.Addr != "" {
		cfg.Net.Addr = f.Net.Addr
	}
	if f.Net.TickRate != nil {
		if *f.Net.TickRate <= 0 {
			return invalidField("fureylib.net.tick_rate", "must be > 0")
		}
		cfg.Net.TickRate = *f.Net.TickRate
	}
	if f.Net.TransformRate != nil {
		if *f.Net.TransformRate < 0 {
			return invalidField("fureylib.net.transform_rate", "must be >= 0")
		}
		cfg.Net.TransformRate = *f.Net.TransformRate
	}
	if f.Net.InterpolationDelay != "" {
		d, err := time.ParseDuration(f.Net.InterpolationDelay)
		if err != nil || d < 0 {
			return invalidField("fureylib.net.interpolation_delay", fmt.Sprintf("invalid duration %q", f.Net.InterpolationDelay))
		}
		cfg.Net.InterpolationDelay = d
	}

	if f.Dialogue.Dir != "" {
		cfg.Dialogue.Dir = f.Dialogue.Dir
	}
	return nil
}

func invalidField(field, msg string) error {
	return fmt.Errorf("%s: %s: %w", field, msg, domain.ErrInvalidConfig)
}

type yamlConfig struct {
	FureyLib struct {
		Saves struct {
			Dir    string `yaml:"dir"`
			Format string `yaml:"format"`
		} `yaml:"saves"`

		Net struct {
			Addr               string `yaml:"addr"`
			TickRate           *int   `yaml:"tick_rate"`
			TransformRate      *int   `yaml:"transform_rate"`
			InterpolationDelay string `yaml:"interpolation_delay"`
		} `yaml:"net"`

		Dialogue struct {
			Dir string `yaml:"dir"`
		} `yaml:"dialogue"`
	} `yaml:"fureylib"`
}
