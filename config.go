package breedsnp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v2"
)

// ToolConfig is the configuration shared by the breedsnp commands.
type ToolConfig struct {
	Persistence *PersistenceConfig `toml:"persistence" yaml:"persistence"`
	Simulation  *EngineConfig      `toml:"simulation" yaml:"simulation"`
	Seed        int64              `toml:"seed" yaml:"seed" ini:"seed" env:"BREEDSNP_SEED"`
}

// DefaultToolConfig stores runs in ./breedsnp.db and simulates with the
// engine defaults.
func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Persistence: &PersistenceConfig{
			Name:          "breedsnp.db",
			Path:          ".",
			SQLitePragmas: []string{"journal_mode(WAL)", "foreign_keys(1)"},
		},
		Simulation: DefaultEngineConfig(),
	}
}

// LoadToolConfig reads path over the defaults. The format follows the file
// extension: .toml, .yaml/.yml or .ini. An INI file keeps the seed in the
// default section and the rest in [persistence] and [simulation].
func LoadToolConfig(path string) (*ToolConfig, error) {
	config := DefaultToolConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", path, err)
		}
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", path, err)
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", path, err)
		}
	case ".ini":
		if err := loadINI(path, config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config file '%s' has unsupported extension %q: %w", path, ext, ErrInvalidConfig)
	}

	config.fill()
	return config, nil
}

func loadINI(path string, config *ToolConfig) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", path, err)
	}

	var root struct {
		Seed int64 `ini:"seed"`
	}
	if err := cfg.Section(ini.DefaultSection).MapTo(&root); err != nil {
		return fmt.Errorf("failed to map default section: %w", err)
	}
	config.Seed = root.Seed

	if err := cfg.Section("persistence").MapTo(config.Persistence); err != nil {
		return fmt.Errorf("failed to map [persistence] section: %w", err)
	}
	if err := cfg.Section("simulation").MapTo(config.Simulation); err != nil {
		return fmt.Errorf("failed to map [simulation] section: %w", err)
	}
	return nil
}

// ParseEnv applies BREEDSNP_* environment overrides, including those of the
// nested persistence and simulation sections.
func (c *ToolConfig) ParseEnv() error {
	c.fill()
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// fill restores defaults for sections a file left out.
func (c *ToolConfig) fill() {
	defaults := DefaultToolConfig()
	if c.Persistence == nil {
		c.Persistence = defaults.Persistence
	}
	if c.Simulation == nil {
		c.Simulation = defaults.Simulation
	}
	if c.Simulation.GenTag == "" {
		c.Simulation.GenTag = DefaultGenTag
	}
}
