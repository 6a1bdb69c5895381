// Package config provides application configuration loaded from an optional
// YAML file and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the variable holding the YAML config path.
const EnvConfigFile = "LENSORDERS_CONFIG"

// DefaultDBPath is relative to the working directory.
const DefaultDBPath = "data/lens_orders.db"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	App      AppConfig      `yaml:"app"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

// AppConfig holds application-level settings. Empty values defer to the
// preferences stored in the database.
type AppConfig struct {
	Lang      string `yaml:"lang"`
	ExportDir string `yaml:"export_dir"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{Database: DatabaseConfig{Path: DefaultDBPath}}
}

// Load reads the YAML file at path, or the one named by LENSORDERS_CONFIG when
// path is empty, then applies environment overrides. No file at all is fine.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile loads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	cfg.Database.Path = strings.TrimSpace(cfg.Database.Path)
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDBPath
	}
	cfg.App.Lang = strings.ToLower(strings.TrimSpace(cfg.App.Lang))
}

func (c *Config) applyEnv() {
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.Debug = getEnvBool("DB_DEBUG", c.Database.Debug)
	c.App.Lang = strings.ToLower(getEnv("APP_LANG", c.App.Lang))
	c.App.ExportDir = getEnv("EXPORT_DIR", c.App.ExportDir)
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
