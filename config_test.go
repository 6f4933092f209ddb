package goCred

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
		wantMsg   string
	}{
		{
			name:      "defaults valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "generator max length zero",
			mutate: func(c *Config) {
				c.Generator.MaxLength = 0
			},
			wantMsg: "Generator MaxLength",
		},
		{
			name: "default policy longer than max",
			mutate: func(c *Config) {
				c.Generator.MaxLength = 8
			},
			wantMsg: "exceeds MaxLength",
		},
		{
			name: "default policy without classes",
			mutate: func(c *Config) {
				c.Generator.DefaultPolicy.UseUpper = false
				c.Generator.DefaultPolicy.UseLower = false
				c.Generator.DefaultPolicy.UseDigits = false
				c.Generator.DefaultPolicy.UseSpecial = false
			},
			wantMsg: "DefaultPolicy",
		},
		{
			name: "argon2 memory too low",
			mutate: func(c *Config) {
				c.Credential.Memory = 1024
			},
			wantMsg: "Credential",
		},
		{
			name: "negative min score",
			mutate: func(c *Config) {
				c.Credential.MinScore = -1
			},
			wantMsg: "MinScore",
		},
		{
			name: "denylist blank key",
			mutate: func(c *Config) {
				c.Denylist.Enabled = true
				c.Denylist.RedisKey = "  "
			},
			wantMsg: "RedisKey",
		},
		{
			name: "blank key ignored when denylist disabled",
			mutate: func(c *Config) {
				c.Denylist.RedisKey = ""
			},
			wantValid: true,
		},
		{
			name: "throttle zero window",
			mutate: func(c *Config) {
				c.Throttle.Enabled = true
				c.Throttle.WindowSeconds = 0
			},
			wantMsg: "WindowSeconds",
		},
		{
			name: "throttle empty anonymous id",
			mutate: func(c *Config) {
				c.Throttle.Enabled = true
				c.Throttle.AnonymousClientID = ""
			},
			wantMsg: "AnonymousClientID",
		},
		{
			name: "audit zero buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantMsg: "BufferSize",
		},
		{
			name: "log level upper case",
			mutate: func(c *Config) {
				c.Logging.Level = "DEBUG"
			},
			wantValid: true,
		},
		{
			name: "log level invalid",
			mutate: func(c *Config) {
				c.Logging.Level = "trace"
			},
			wantMsg: "Logging Level",
		},
		{
			name: "log format invalid",
			mutate: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantMsg: "Logging Format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantValid {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestHighSecurityConfigValid(t *testing.T) {
	cfg := HighSecurityConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected HighSecurityConfig to validate, got %v", err)
	}
	if !cfg.Throttle.Enabled || !cfg.Denylist.Enabled || cfg.Denylist.FailOpen {
		t.Fatalf("unexpected high security settings: %+v", cfg)
	}
}

func TestDecodeConfigFormats(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{
			format: "toml",
			data: `
[generator]
max_batch = 7

[generator.default_policy]
length = 20
use_upper = true
use_lower = true
use_special = false

[denylist]
enabled = true
words = ["hunter2", "letmein"]

[throttle]
window_seconds = 30
`,
		},
		{
			format: ".json",
			data: `{
  "generator": {"max_batch": 7, "default_policy": {"length": 20, "use_upper": true, "use_lower": true, "use_special": false}},
  "denylist": {"enabled": true, "words": ["hunter2", "letmein"]},
  "throttle": {"window_seconds": 30}
}`,
		},
		{
			format: "yml",
			data: `
generator:
  max_batch: 7
  default_policy:
    length: 20
    use_upper: true
    use_lower: true
    use_special: false
denylist:
  enabled: true
  words: [hunter2, letmein]
throttle:
  window_seconds: 30
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg, err := DecodeConfig([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("DecodeConfig failed: %v", err)
			}
			if cfg.Generator.MaxBatch != 7 {
				t.Fatalf("expected max_batch 7, got %d", cfg.Generator.MaxBatch)
			}
			p := cfg.Generator.DefaultPolicy
			// use_digits is absent from every document, so its default survives.
			if p.Length != 20 || !p.UseUpper || !p.UseLower || !p.UseDigits || p.UseSpecial {
				t.Fatalf("unexpected default policy %+v", p)
			}
			if !cfg.Denylist.Enabled || len(cfg.Denylist.Words) != 2 {
				t.Fatalf("unexpected denylist %+v", cfg.Denylist)
			}
			if cfg.Throttle.Window().Seconds() != 30 {
				t.Fatalf("expected 30s window, got %s", cfg.Throttle.Window())
			}
			// Untouched sections keep their defaults.
			if cfg.Generator.MaxLength != 256 || cfg.Credential.Memory != 64*1024 || cfg.Denylist.RedisKey != "gcd:denylist" {
				t.Fatalf("expected defaults to survive decoding: %+v", cfg)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("expected decoded config to validate, got %v", err)
			}
		})
	}
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{"toml", "[generator]\nmax_lenght = 10\n"},
		{"json", `{"generator": {"max_lenght": 10}}`},
		{"yaml", "generator:\n  max_lenght: 10\n"},
	}

	for _, tt := range tests {
		if _, err := DecodeConfig([]byte(tt.data), tt.format); err == nil {
			t.Fatalf("%s: expected unknown key to be rejected", tt.format)
		}
	}
}

func TestDecodeConfigEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := DecodeConfig(nil, "yaml")
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Generator.MaxBatch != DefaultConfig().Generator.MaxBatch {
		t.Fatal("expected defaults for an empty document")
	}
}

func TestDecodeConfigUnsupportedFormat(t *testing.T) {
	if _, err := DecodeConfig([]byte("x"), "ini"); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:         "debug",
		EnvDenylistEnabled:  "true",
		EnvDenylistFailOpen: "1",
		EnvThrottleEnabled:  "false",
		EnvThrottleMax:      "42",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	cfg.Throttle.Enabled = true
	if err := cfg.ApplyEnvOverrides(lookup); err != nil {
		t.Fatalf("ApplyEnvOverrides failed: %v", err)
	}

	if cfg.Logging.Level != "debug" || !cfg.Denylist.Enabled || !cfg.Denylist.FailOpen || cfg.Throttle.Enabled || cfg.Throttle.MaxPerWindow != 42 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}

	env[EnvThrottleMax] = "many"
	if err := cfg.ApplyEnvOverrides(lookup); err == nil || !strings.Contains(err.Error(), EnvThrottleMax) {
		t.Fatalf("expected parse error naming %s, got %v", EnvThrottleMax, err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "gocred.toml")
	if err := os.WriteFile(good, []byte("[credential]\nmin_score = 40\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := LoadConfigFile(good)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.Credential.MinScore != 40 || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"generator": {"max_batch": 0}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfigFile(bad); err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation failure, got %v", err)
	}

	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoggingConfigSlogLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"WARN":  "WARN",
		"error": "ERROR",
		"":      "INFO",
		"info":  "INFO",
	}
	for in, want := range tests {
		if got := (LoggingConfig{Level: in}).SlogLevel().String(); got != want {
			t.Fatalf("SlogLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}
