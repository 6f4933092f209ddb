package goCred

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/MrEthical07/goCred/generator"
	"github.com/MrEthical07/goCred/password"
)

// Config is the complete Engine configuration. Start from DefaultConfig and
// override fields; Build validates and copies it, so later mutation of the
// caller's value has no effect.
type Config struct {
	Generator  GeneratorConfig  `json:"generator" toml:"generator" yaml:"generator"`
	Digest     DigestConfig     `json:"digest" toml:"digest" yaml:"digest"`
	Credential CredentialConfig `json:"credential" toml:"credential" yaml:"credential"`
	Denylist   DenylistConfig   `json:"denylist" toml:"denylist" yaml:"denylist"`
	Throttle   ThrottleConfig   `json:"throttle" toml:"throttle" yaml:"throttle"`
	Audit      AuditConfig      `json:"audit" toml:"audit" yaml:"audit"`
	Metrics    MetricsConfig    `json:"metrics" toml:"metrics" yaml:"metrics"`
	Logging    LoggingConfig    `json:"logging" toml:"logging" yaml:"logging"`
}

// GeneratorConfig bounds password generation.
type GeneratorConfig struct {
	// DefaultPolicy is used by callers that do not supply their own (CLI, HTTP demo).
	DefaultPolicy generator.Policy `json:"default_policy" toml:"default_policy" yaml:"default_policy"`
	// MaxLength caps Policy.Length per call.
	MaxLength int `json:"max_length" toml:"max_length" yaml:"max_length"`
	// MaxBatch caps the count passed to GenerateMany.
	MaxBatch int `json:"max_batch" toml:"max_batch" yaml:"max_batch"`
}

// DigestConfig controls Engine.Digest.
type DigestConfig struct {
	// IncludeSimulated fills Set.SimulatedBcrypt. The field costs one PBKDF2
	// derivation per call and carries no security value.
	IncludeSimulated bool `json:"include_simulated" toml:"include_simulated" yaml:"include_simulated"`
}

// CredentialConfig holds Argon2id parameters and the hashing admission policy.
type CredentialConfig struct {
	Memory           uint32 `json:"memory_kib" toml:"memory_kib" yaml:"memory_kib"`
	Time             uint32 `json:"time" toml:"time" yaml:"time"`
	Parallelism      uint8  `json:"parallelism" toml:"parallelism" yaml:"parallelism"`
	SaltLength       uint32 `json:"salt_length" toml:"salt_length" yaml:"salt_length"`
	KeyLength        uint32 `json:"key_length" toml:"key_length" yaml:"key_length"`
	MaxPasswordBytes int    `json:"max_password_bytes" toml:"max_password_bytes" yaml:"max_password_bytes"`
	// MinScore rejects credentials whose strength score is lower. Zero disables the check.
	MinScore int `json:"min_score" toml:"min_score" yaml:"min_score"`
}

// DenylistConfig enables the compromised-password lookup consulted by Analyze.
type DenylistConfig struct {
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	// RedisKey names the Redis set used when a Redis client is supplied.
	RedisKey string `json:"redis_key" toml:"redis_key" yaml:"redis_key"`
	// FailOpen scores without the denylist when the backend is unreachable
	// instead of returning ErrDenylistUnavailable.
	FailOpen bool `json:"fail_open" toml:"fail_open" yaml:"fail_open"`
	// Words seeds an in-memory denylist when no Redis client or checker is supplied.
	Words []string `json:"words" toml:"words" yaml:"words"`
}

// ThrottleConfig caps generated passwords per client id. It requires Redis.
type ThrottleConfig struct {
	Enabled       bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	MaxPerWindow  int  `json:"max_per_window" toml:"max_per_window" yaml:"max_per_window"`
	WindowSeconds int  `json:"window_seconds" toml:"window_seconds" yaml:"window_seconds"`
	// AnonymousClientID is charged for calls whose context carries no client id.
	AnonymousClientID string `json:"anonymous_client_id" toml:"anonymous_client_id" yaml:"anonymous_client_id"`
}

// Window returns WindowSeconds as a duration.
func (c ThrottleConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	BufferSize int  `json:"buffer_size" toml:"buffer_size" yaml:"buffer_size"`
	DropIfFull bool `json:"drop_if_full" toml:"drop_if_full" yaml:"drop_if_full"`
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	EnableLatencyHistograms bool `json:"enable_latency_histograms" toml:"enable_latency_histograms" yaml:"enable_latency_histograms"`
}

// LoggingConfig is read by the bundled CLI and HTTP demo when they construct
// their slog handler. The Engine itself logs through Builder.WithLogger.
type LoggingConfig struct {
	Level  string `json:"level" toml:"level" yaml:"level"`
	Format string `json:"format" toml:"format" yaml:"format"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// SlogLevel maps Level onto slog. Unknown values map to info.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultConfig() Config {
	argon := password.DefaultConfig()
	return Config{
		Generator: GeneratorConfig{
			DefaultPolicy: generator.DefaultPolicy(),
			MaxLength:     256,
			MaxBatch:      100,
		},
		Digest: DigestConfig{
			IncludeSimulated: true,
		},
		Credential: CredentialConfig{
			Memory:           argon.Memory,
			Time:             argon.Time,
			Parallelism:      argon.Parallelism,
			SaltLength:       argon.SaltLength,
			KeyLength:        argon.KeyLength,
			MaxPasswordBytes: argon.MaxPasswordBytes,
			MinScore:         0,
		},
		Denylist: DenylistConfig{
			Enabled:  false,
			RedisKey: "gcd:denylist",
			FailOpen: false,
		},
		Throttle: ThrottleConfig{
			Enabled:           false,
			MaxPerWindow:      1000,
			WindowSeconds:     60,
			AnonymousClientID: "anonymous",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Denylist.Words = slices.Clone(cfg.Denylist.Words)
	return out
}

func (c CredentialConfig) argon2() password.Config {
	return password.Config{
		Memory:           c.Memory,
		Time:             c.Time,
		Parallelism:      c.Parallelism,
		SaltLength:       c.SaltLength,
		KeyLength:        c.KeyLength,
		MaxPasswordBytes: c.MaxPasswordBytes,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	// Generator
	if c.Generator.MaxLength <= 0 {
		return errors.New("Generator MaxLength must be > 0")
	}
	if c.Generator.MaxBatch <= 0 {
		return errors.New("Generator MaxBatch must be > 0")
	}
	if err := c.Generator.DefaultPolicy.Validate(); err != nil {
		return errors.New("Generator DefaultPolicy is invalid: " + err.Error())
	}
	if c.Generator.DefaultPolicy.Length > c.Generator.MaxLength {
		return errors.New("Generator DefaultPolicy Length exceeds MaxLength")
	}

	// Credential
	if err := c.Credential.argon2().Validate(); err != nil {
		return errors.New("Credential " + err.Error())
	}
	if c.Credential.MinScore < 0 {
		return errors.New("Credential MinScore must be >= 0")
	}

	// Denylist
	if c.Denylist.Enabled && strings.TrimSpace(c.Denylist.RedisKey) == "" {
		return errors.New("Denylist RedisKey must not be empty")
	}

	// Throttle
	if c.Throttle.Enabled {
		if c.Throttle.MaxPerWindow <= 0 {
			return errors.New("Throttle MaxPerWindow must be > 0")
		}
		if c.Throttle.WindowSeconds <= 0 {
			return errors.New("Throttle WindowSeconds must be > 0")
		}
		if c.Throttle.AnonymousClientID == "" {
			return errors.New("Throttle AnonymousClientID must not be empty")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0")
	}

	// Logging
	if c.Logging.Level != "" && !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return errors.New("Logging Level must be one of debug, info, warn, error")
	}
	if c.Logging.Format != "" && !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		return errors.New("Logging Format must be 'json' or 'text'")
	}

	return nil
}
