package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModeDefaults are the length targets used when a request leaves them unset.
type ModeDefaults struct {
	MaxLength int `yaml:"max_length"`
	MinLength int `yaml:"min_length"`
}

// Tuning holds per-mode defaults, optionally overridden from a YAML file:
//
//	max_chunk: 1000
//	extractive: {max_length: 3, min_length: 1}
//	abstractive: {max_length: 150, min_length: 120}
type Tuning struct {
	MaxChunk    int          `yaml:"max_chunk"`
	Extractive  ModeDefaults `yaml:"extractive"`
	Abstractive ModeDefaults `yaml:"abstractive"`
}

func DefaultTuning() *Tuning {
	return &Tuning{
		MaxChunk:    1000,
		Extractive:  ModeDefaults{MaxLength: 3, MinLength: 1},
		Abstractive: ModeDefaults{MaxLength: 150, MinLength: 120},
	}
}

// LoadTuning reads path over the defaults. An empty path yields the defaults.
// Keys absent from the file keep their default value.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse tuning file %s: %w", path, err)
	}
	if t.MaxChunk <= 0 {
		return nil, fmt.Errorf("tuning file %s: max_chunk must be positive", path)
	}
	return t, nil
}

// EffectiveTuning loads cfg.TuningFile and applies MAX_CHUNK when no file is
// given. A tuning file's max_chunk wins over the environment.
func EffectiveTuning(cfg *Config) (*Tuning, error) {
	t, err := LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, err
	}
	if cfg.TuningFile == "" && cfg.MaxChunk > 0 {
		t.MaxChunk = cfg.MaxChunk
	}
	return t, nil
}
