package goCred

import (
	"errors"
	"strings"

	"github.com/MrEthical07/goCred/strength"
)

// LintSeverity ranks configuration warnings.
type LintSeverity int

const (
	LintInfo LintSeverity = iota
	LintWarn
	LintHigh
)

func (s LintSeverity) String() string {
	switch s {
	case LintInfo:
		return "INFO"
	case LintWarn:
		return "WARN"
	case LintHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// LintWarning is one finding from Config.Lint. Codes are stable identifiers.
type LintWarning struct {
	Code     string
	Severity LintSeverity
	Message  string
}

// LintResult is the ordered list of findings.
type LintResult []LintWarning

// Codes returns the warning codes in order.
func (r LintResult) Codes() []string {
	out := make([]string, len(r))
	for i, w := range r {
		out[i] = w.Code
	}
	return out
}

// BySeverity returns findings at or above min.
func (r LintResult) BySeverity(min LintSeverity) LintResult {
	var out LintResult
	for _, w := range r {
		if w.Severity >= min {
			out = append(out, w)
		}
	}
	return out
}

// AsError joins findings at or above min into one error, or returns nil.
func (r LintResult) AsError(min LintSeverity) error {
	found := r.BySeverity(min)
	if len(found) == 0 {
		return nil
	}
	msgs := make([]string, len(found))
	for i, w := range found {
		msgs[i] = w.Severity.String() + " " + w.Code + ": " + w.Message
	}
	return errors.New("config lint: " + strings.Join(msgs, "; "))
}

const lintArgon2MinMemoryKiB = 64 * 1024

// Lint reports settings that are valid but risky. It never fails; use
// Validate for hard errors.
func (c *Config) Lint() LintResult {
	var ws LintResult
	add := func(code string, sev LintSeverity, msg string) {
		ws = append(ws, LintWarning{Code: code, Severity: sev, Message: msg})
	}

	if c.Credential.MinScore > strength.MaxScore {
		add("min_score_unreachable", LintHigh,
			"Credential MinScore exceeds the highest score the analyzer awards; every credential is rejected")
	}
	if c.Credential.Memory < lintArgon2MinMemoryKiB {
		add("argon2_memory_low", LintWarn, "Credential Memory is below 64 MiB")
	}
	if c.Credential.Time < 2 {
		add("argon2_time_low", LintWarn, "Credential Time is below 2 passes")
	}
	if c.Credential.MinScore == 0 {
		add("min_score_disabled", LintInfo, "HashCredential accepts any credential that meets the length bounds")
	}

	if !c.Denylist.Enabled {
		add("denylist_disabled", LintInfo, "Analyze scores without a compromised-password denylist")
	} else if c.Denylist.FailOpen {
		add("denylist_fail_open", LintWarn, "denylist outages silently score without the lookup")
	}

	if !c.Throttle.Enabled {
		add("throttle_disabled", LintInfo, "password generation is not rate limited")
	}

	if c.Digest.IncludeSimulated {
		add("simulated_digest_enabled", LintInfo, "Digest returns a bcrypt-shaped field that is not a real hash")
	}

	if !c.Audit.Enabled {
		add("audit_disabled", LintInfo, "no audit events are emitted")
	} else if c.Audit.DropIfFull {
		add("audit_drops_events", LintInfo, "audit events are dropped when the buffer is full")
	}

	return ws
}

// HighSecurityConfig returns a configuration for deployments that store
// credentials: fail-closed denylist, throttled generation, no simulated
// digest, a minimum credential score and blocking audit. The throttle needs a
// Redis client at Build.
func HighSecurityConfig() Config {
	cfg := defaultConfig()
	cfg.Digest.IncludeSimulated = false
	cfg.Credential.MinScore = 45
	cfg.Denylist.Enabled = true
	cfg.Denylist.FailOpen = false
	cfg.Throttle.Enabled = true
	cfg.Throttle.MaxPerWindow = 100
	cfg.Audit.Enabled = true
	cfg.Audit.DropIfFull = false
	return cfg
}
