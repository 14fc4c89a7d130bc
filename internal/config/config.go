package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Profile ProfileConfig `toml:"profile"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type ProfileConfig struct {
	// Path to the TOML profile definition. Empty means the embedded
	// default profile.
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4600,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the TOML config file and environment
// variables. The file lives at <UserConfigDir>/profile-mcp/config.toml;
// PROFILE_MCP_* environment variables override file values.
func Load() (Config, error) {
	return loadWith(FilePath())
}

func loadWith(path string) (Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server.port: %d", cfg.Server.Port)
	}

	return cfg, nil
}

// FilePath returns the config file location.
func FilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "profile-mcp", "config.toml")
}
