package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "REMAP_"

// Config drives the CLI. Workers == 0 means one line per CPU.
type Config struct {
	Workers   int  `koanf:"workers"`
	Parallel  bool `koanf:"parallel"`
	Verbosity int  `koanf:"verbosity"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"workers":   0,
		"parallel":  true,
		"verbosity": 0,
	}
}

// Load merges, in increasing priority: built-in defaults, the TOML file at
// path (skipped when path is empty) and REMAP_* environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("invalid configuration: workers must be >= 0, got %d", c.Workers)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("invalid configuration: verbosity must be >= 0, got %d", c.Verbosity)
	}
	return nil
}
