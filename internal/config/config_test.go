package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4600 {
		t.Errorf("Server.Port = %d, want 4600", cfg.Server.Port)
	}
	if cfg.Profile.Path != "" {
		t.Errorf("Profile.Path = %q, want empty (embedded default)", cfg.Profile.Path)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestFileValues(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `[server]
port = 9100

[profile]
path = "/tmp/me.toml"

[log]
level = "debug"
`)

	cfg, err := loadWith(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Profile.Path != "/tmp/me.toml" {
		t.Errorf("Profile.Path = %q, want /tmp/me.toml", cfg.Profile.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `[server]
port = 9100
`)
	t.Setenv("PROFILE_MCP_SERVER_PORT", "7000")
	t.Setenv("PROFILE_MCP_LOG_LEVEL", "debug")

	cfg, err := loadWith(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 (env override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug (env override)", cfg.Log.Level)
	}
}

func TestEnvInvalidInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROFILE_MCP_SERVER_PORT", "not-a-number")

	if _, err := loadWith(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for non-integer port")
	}
}

func TestInvalidPort(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `[server]
port = -1
`)

	if _, err := loadWith(path); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `[server
port = `)

	if _, err := loadWith(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestSetKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := setKeyIn(path, "server.port", "8080"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := setKeyIn(path, "log.level", "debug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := loadWith(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Profile.Path != "" {
		t.Errorf("Profile.Path = %q, want empty", cfg.Profile.Path)
	}
}

func TestSetKey_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := setKeyIn(path, "server.bogus", "1"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetKey_InvalidInt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := setKeyIn(path, "server.port", "eighty"); err == nil {
		t.Fatal("expected error for non-integer value")
	}
}

func TestShowAll(t *testing.T) {
	clearEnv(t)
	cfg, err := loadWith(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	infos := ShowAll(cfg)
	if len(infos) != len(specs) {
		t.Fatalf("len(ShowAll) = %d, want %d", len(infos), len(specs))
	}
	if infos[0].Key != "server.port" || infos[0].Value != "4600" {
		t.Errorf("unexpected first entry: %+v", infos[0])
	}
}

func TestValidKeys(t *testing.T) {
	keys := ValidKeys()
	if len(keys) != len(specs) {
		t.Fatalf("len(ValidKeys) = %d, want %d", len(keys), len(specs))
	}
}
