package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// cleanEnv removes every variable Load reads so tests see only what they set.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, v := range SupportedEnvVars() {
		t.Setenv(v.Var, "")
		os.Unsetenv(v.Var)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Limits.MaxCount != 1000 {
		t.Errorf("MaxCount = %d, want 1000", cfg.Limits.MaxCount)
	}
	if cfg.Server.MaxBodyBytes != 100*1024 {
		t.Errorf("MaxBodyBytes = %d, want 100KiB", cfg.Server.MaxBodyBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"8080", 8080},
		{" 9000 ", 9000},
		{"", DefaultPort},
		{"abc", DefaultPort},
		{"80abc", DefaultPort},
		{"0", DefaultPort},
		{"-1", DefaultPort},
		{"70000", DefaultPort},
		{"65535", 65535},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParsePort(tt.raw); got != tt.want {
				t.Errorf("ParsePort(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cleanEnv(t)
	result, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !result.UsedDefaults {
		t.Error("UsedDefaults should be true without a config file")
	}
	if result.Config.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", result.Config.Server.Port, DefaultPort)
	}
	if result.Config.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", result.Config.Logging.Level)
	}
}

func TestLoad_PortEnv(t *testing.T) {
	cleanEnv(t)
	tests := []struct {
		env  string
		want int
	}{
		{"4321", 4321},
		{"not-a-port", DefaultPort},
		{"", DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(PortEnv, tt.env)

			result, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if result.Config.Server.Port != tt.want {
				t.Errorf("Port = %d, want %d", result.Config.Server.Port, tt.want)
			}
		})
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	content := `
[server]
host = "127.0.0.1"
port = 8088

[logging]
format = "json"
level = "debug"

[limits]
maxCount = 250
`
	if err := os.WriteFile(filepath.Join(dir, "seqapi.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Load(LoadOptions{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := result.Config

	if result.UsedDefaults {
		t.Error("UsedDefaults should be false when a file is found")
	}
	if !strings.HasSuffix(result.ConfigPath, "seqapi.toml") {
		t.Errorf("ConfigPath = %q", result.ConfigPath)
	}
	if cfg.Server.Addr() != "127.0.0.1:8088" {
		t.Errorf("Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Limits.MaxCount != 250 {
		t.Errorf("MaxCount = %d, want 250", cfg.Limits.MaxCount)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.ReadTimeoutSeconds != 15 {
		t.Errorf("ReadTimeoutSeconds = %d, want 15", cfg.Server.ReadTimeoutSeconds)
	}
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "server:\n  port: 9100\n  compression: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100", result.Config.Server.Port)
	}
	if result.Config.Server.Compression {
		t.Error("Compression should be disabled by the file")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("SEQAPI_LOG_LEVEL", "warn")
	t.Setenv("SEQAPI_MAX_COUNT", "10")
	t.Setenv(PortEnv, "5000")

	result, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", result.Config.Logging.Level)
	}
	if result.Config.Limits.MaxCount != 10 {
		t.Errorf("MaxCount = %d, want 10", result.Config.Limits.MaxCount)
	}
	if len(result.EnvOverrides) != 3 {
		t.Errorf("EnvOverrides = %+v, want 3 entries", result.EnvOverrides)
	}
}

func TestLoad_MaxCountAboveHardLimit(t *testing.T) {
	cleanEnv(t)
	t.Setenv("SEQAPI_MAX_COUNT", "5000")

	_, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want ConfigError", err)
	}
	if cfgErr.Field != "limits.maxCount" {
		t.Errorf("Field = %q, want limits.maxCount", cfgErr.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"negative max", func(c *Config) { c.Limits.MaxCount = -1 }, "limits.maxCount"},
		{"zero body", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.maxBodyBytes"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := cfg.Encode(&buf, "toml"); err != nil {
			t.Fatal(err)
		}
		var back Config
		if _, err := toml.Decode(buf.String(), &back); err != nil {
			t.Fatalf("decode: %v\n%s", err, buf.String())
		}
		if back.Server.Port != cfg.Server.Port {
			t.Errorf("port round-trip = %d", back.Server.Port)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := cfg.Encode(&buf, "yaml"); err != nil {
			t.Fatal(err)
		}
		var back Config
		if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
			t.Fatal(err)
		}
		if back.Limits.MaxCount != cfg.Limits.MaxCount {
			t.Errorf("maxCount round-trip = %d", back.Limits.MaxCount)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := cfg.Encode(&buf, "json"); err != nil {
			t.Fatal(err)
		}
		if !json.Valid(buf.Bytes()) {
			t.Errorf("invalid json: %s", buf.String())
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := cfg.Encode(&bytes.Buffer{}, "ini"); err == nil {
			t.Error("Encode(ini) should fail")
		}
	})
}

func TestSupportedEnvVars(t *testing.T) {
	vars := SupportedEnvVars()
	if vars[0].Var != "PORT" {
		t.Errorf("first env var = %q, want PORT", vars[0].Var)
	}
	if len(vars) != len(envBindings)+1 {
		t.Errorf("len = %d", len(vars))
	}
}
