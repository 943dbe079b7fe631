package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const FileName = "decktint.config"

var ErrNoPreset = errors.New("preset not found")

type Config struct {
	DefaultScope string            `json:"default_scope,omitempty"`
	Jobs         int               `json:"jobs,omitempty"`
	Presets      map[string]string `json:"presets,omitempty"`
}

func Default() Config {
	return Config{
		DefaultScope: "all",
		Jobs:         4,
		Presets: map[string]string{
			"swap-accents": "accent1:accent2,accent2:accent1",
			"darken":       "lt1:dk1,lt2:dk2",
		},
	}
}

func Load(dir string) (Config, error) {
	cfgPath := filepath.Join(dir, FileName)

	f, err := os.Open(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, err
	}

	def := Default()
	if cfg.DefaultScope == "" {
		cfg.DefaultScope = def.DefaultScope
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = def.Jobs
	}
	if cfg.Presets == nil {
		cfg.Presets = make(map[string]string)
	}

	return cfg, nil
}

func Save(dir string, cfg Config) error {
	cfgPath := filepath.Join(dir, FileName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := cfgPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, cfgPath)
}

func (c Config) Preset(name string) (string, error) {
	mapping, ok := c.Presets[name]
	if ok {
		return mapping, nil
	}

	names := make([]string, 0, len(c.Presets))
	for n := range c.Presets {
		names = append(names, n)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %q (no presets configured)", ErrNoPreset, name)
	}
	sort.Strings(names)
	return "", fmt.Errorf("%w: %q (available: %s)", ErrNoPreset, name, strings.Join(names, ", "))
}
