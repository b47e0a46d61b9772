// Package config handles Parley configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file omits a value.
const (
	DefaultChatModel = "gpt-4o-mini"
	DefaultMaxTokens = 1000
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./parley.yaml, ~/.config/parley/config.yaml, /etc/parley/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"parley.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "parley", "config.yaml"))
	}

	paths = append(paths, "/etc/parley/config.yaml")
	return paths
}

// Config holds all Parley configuration.
type Config struct {
	OpenAI   OpenAIConfig `yaml:"openai"`
	Models   ModelsConfig `yaml:"models"`
	LogLevel string       `yaml:"log_level"`
}

// OpenAIConfig defines OpenAI API settings. APIKey falls back to the
// OPENAI_API_KEY environment variable when empty.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// ModelsConfig selects the chat model and response budget.
type ModelsConfig struct {
	Chat      string `yaml:"chat"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Chat:      DefaultChatModel,
			MaxTokens: DefaultMaxTokens,
		},
	}
}

// Load reads a config file. An explicit path must exist; otherwise the
// search paths are tried in order and the first hit wins. When no file
// is found and no explicit path was given, defaults are returned — a
// config file is optional for this client.
func Load(explicit string) (*Config, error) {
	path, err := find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// find locates a config file. Returns "" (no error) when nothing was
// found and no explicit path was requested.
func find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Models.Chat == "" {
		c.Models.Chat = DefaultChatModel
	}
	if c.Models.MaxTokens <= 0 {
		c.Models.MaxTokens = DefaultMaxTokens
	}
}

// ResolveAPIKey returns the configured OpenAI API key, falling back to
// the OPENAI_API_KEY environment variable. Empty means unconfigured.
func (c *Config) ResolveAPIKey() string {
	if c.OpenAI.APIKey != "" {
		return c.OpenAI.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}
