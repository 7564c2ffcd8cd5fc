package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marchblue/cascade/pkg/changes"
	"github.com/marchblue/cascade/pkg/observability"
	"github.com/marchblue/cascade/pkg/resolve"
)

// FileName is the project configuration file looked up at the root.
const FileName = ".cascade.yaml"

// Config holds all cascade configuration.
type Config struct {
	StrategyName string              `yaml:"strategy"`
	MinimumBump  string              `yaml:"minimum_bump"`
	MaxDepth     int                 `yaml:"max_depth"`
	LogLevel     string              `yaml:"log_level"`
	Groups       map[string][]string `yaml:"groups"`
	Excluded     []string            `yaml:"excluded"`
	ChangeDir    string              `yaml:"change_dir"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		StrategyName: "independent",
		MinimumBump:  "patch",
		LogLevel:     "info",
		ChangeDir:    ".cascade",
	}
}

// Load reads .cascade.yaml from root (if present) and applies environment
// overrides.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := getEnv("CASCADE_STRATEGY", ""); v != "" {
		c.StrategyName = v
	}
	if v := getEnv("CASCADE_MINIMUM_BUMP", ""); v != "" {
		c.MinimumBump = v
	}
	if v := getEnvInt("CASCADE_MAX_DEPTH", -1); v >= 0 {
		c.MaxDepth = v
	}
	if v := getEnv("CASCADE_LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("CASCADE_CHANGE_DIR", ""); v != "" {
		c.ChangeDir = v
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.StrategyName) {
	case "independent", "unified", "mixed":
	default:
		return fmt.Errorf("unknown strategy %q", c.StrategyName)
	}
	if _, err := changes.ParseBump(c.MinimumBump); err != nil {
		return fmt.Errorf("minimum_bump: %w", err)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth)
	}
	return nil
}

// Strategy converts the configuration into the engine's strategy value.
// Group membership lists become a package-to-group map; a package listed
// in two groups is an error.
func (c *Config) Strategy() (resolve.Strategy, error) {
	switch strings.ToLower(c.StrategyName) {
	case "unified":
		return resolve.Unified(), nil
	case "mixed":
		groups := make(map[string]string)
		for group, members := range c.Groups {
			for _, name := range members {
				if prev, dup := groups[name]; dup && prev != group {
					return resolve.Strategy{}, fmt.Errorf(
						"package %q belongs to groups %q and %q", name, prev, group)
				}
				groups[name] = group
			}
		}
		return resolve.Mixed(groups, c.Excluded), nil
	default:
		return resolve.Independent(), nil
	}
}

// Propagation converts the configuration into the engine's propagation
// settings.
func (c *Config) Propagation() resolve.Config {
	out := resolve.DefaultConfig()
	if intent, err := changes.ParseBump(c.MinimumBump); err == nil {
		out.MinimumDependencyBump = intent
	}
	out.MaxDepth = c.MaxDepth
	return out
}

// Logger builds the logger implied by the configured level.
func (c *Config) Logger() *observability.Logger {
	return observability.NewLogger(observability.ParseLevel(c.LogLevel), os.Stderr)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
