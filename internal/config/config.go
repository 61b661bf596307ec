// Package config loads ragchat settings from config files, environment
// variables, and flags, in that precedence order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved client configuration.
type Config struct {
	ServerURL string        `json:"server_url"`
	Model     string        `json:"model"`
	Theme     string        `json:"theme"`
	Timeout   time.Duration `json:"timeout"`
	Verbose   bool          `json:"verbose"`
}

// Load resolves configuration from all sources:
// defaults -> ~/.config/ragchat/ragchat.json -> ./ragchat.json -> RAGCHAT_* env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("model", "")
	v.SetDefault("theme", "dark")
	v.SetDefault("timeout", "120s")
	v.SetDefault("verbose", false)

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "ragchat"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("ragchat")
	v.SetConfigType("json")

	v.SetEnvPrefix("RAGCHAT")
	v.AutomaticEnv()
	_ = v.BindEnv("server_url", "RAGCHAT_SERVER_URL")
	_ = v.BindEnv("model", "RAGCHAT_MODEL")

	_ = v.ReadInConfig()

	cfg := &Config{
		ServerURL: v.GetString("server_url"),
		Model:     v.GetString("model"),
		Theme:     v.GetString("theme"),
		Timeout:   v.GetDuration("timeout"),
		Verbose:   v.GetBool("verbose"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return cfg, nil
}

// GetConfigDir returns the directory where ragchat stores its config file.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ragchat"
	}
	return filepath.Join(home, ".config", "ragchat")
}

// SaveConfig writes the config as JSON, creating parent directories as
// needed.
func (c *Config) SaveConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
