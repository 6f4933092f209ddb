package goCred

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvLogLevel         = "GOCRED_LOG_LEVEL"
	EnvDenylistEnabled  = "GOCRED_DENYLIST_ENABLED"
	EnvDenylistFailOpen = "GOCRED_DENYLIST_FAIL_OPEN"
	EnvThrottleEnabled  = "GOCRED_THROTTLE_ENABLED"
	EnvThrottleMax      = "GOCRED_THROTTLE_MAX_PER_WINDOW"
)

// LoadConfigFile decodes path over DefaultConfig, applies environment overrides
// and validates the result. The format follows the extension: .toml, .json,
// .yaml or .yml.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := DecodeConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, err
	}

	if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validation failed: %w", err)
	}

	return cfg, nil
}

// DecodeConfig decodes data in the given format ("toml", "json", "yaml", with
// or without a leading dot) over DefaultConfig. Fields absent from data keep
// their defaults. It does not validate.
func DecodeConfig(data []byte, format string) (Config, error) {
	cfg := defaultConfig()

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("decode TOML: unknown key %q", undecoded[0].String())
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode JSON: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}

	return cfg, nil
}

// ApplyEnvOverrides overlays GOCRED_* variables resolved through lookup
// (normally os.LookupEnv).
func (c *Config) ApplyEnvOverrides(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvDenylistEnabled, &c.Denylist.Enabled},
		{EnvDenylistFailOpen, &c.Denylist.FailOpen},
		{EnvThrottleEnabled, &c.Throttle.Enabled},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = parsed
	}

	if v, ok := lookup(EnvThrottleMax); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvThrottleMax, err)
		}
		c.Throttle.MaxPerWindow = n
	}

	return nil
}
