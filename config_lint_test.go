package goCred

import "testing"

func TestLint_DefaultConfigHasNoHighFindings(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Lint().AsError(LintHigh); err != nil {
		t.Errorf("default config should not fail AsError(LintHigh): %v", err)
	}
}

func TestLint_HighSecurityConfigMinimalWarnings(t *testing.T) {
	cfg := HighSecurityConfig()
	codes := cfg.Lint().Codes()

	unwanted := []string{
		"denylist_disabled",
		"denylist_fail_open",
		"throttle_disabled",
		"simulated_digest_enabled",
		"audit_disabled",
		"audit_drops_events",
		"min_score_disabled",
		"argon2_memory_low",
	}
	for _, code := range unwanted {
		if containsCode(codes, code) {
			t.Errorf("HighSecurityConfig should not produce warning %q", code)
		}
	}
}

func TestLint_Findings(t *testing.T) {
	tests := []struct {
		code   string
		mutate func(*Config)
	}{
		{"argon2_memory_low", func(c *Config) { c.Credential.Memory = 16 * 1024 }},
		{"argon2_time_low", func(c *Config) { c.Credential.Time = 1 }},
		{"min_score_disabled", func(c *Config) { c.Credential.MinScore = 0 }},
		{"min_score_unreachable", func(c *Config) { c.Credential.MinScore = 80 }},
		{"denylist_disabled", func(c *Config) { c.Denylist.Enabled = false }},
		{"denylist_fail_open", func(c *Config) { c.Denylist.Enabled = true; c.Denylist.FailOpen = true }},
		{"throttle_disabled", func(c *Config) { c.Throttle.Enabled = false }},
		{"simulated_digest_enabled", func(c *Config) { c.Digest.IncludeSimulated = true }},
		{"audit_disabled", func(c *Config) { c.Audit.Enabled = false }},
		{"audit_drops_events", func(c *Config) { c.Audit.Enabled = true; c.Audit.DropIfFull = true }},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			if !containsCode(cfg.Lint().Codes(), tt.code) {
				t.Errorf("expected %s warning", tt.code)
			}
		})
	}
}

func TestLint_NoWarningForGoodArgon2(t *testing.T) {
	cfg := defaultConfig()
	cfg.Credential.Memory = 64 * 1024
	if containsCode(cfg.Lint().Codes(), "argon2_memory_low") {
		t.Error("should not warn when memory == 64 MiB")
	}
}

func TestLint_SeverityAndAsError(t *testing.T) {
	cfg := defaultConfig()
	cfg.Credential.MinScore = 70

	ws := cfg.Lint()
	high := ws.BySeverity(LintHigh)
	if len(high) != 1 || high[0].Code != "min_score_unreachable" {
		t.Fatalf("expected one HIGH finding, got %+v", high)
	}
	for _, w := range ws.BySeverity(LintWarn) {
		if w.Severity < LintWarn {
			t.Errorf("BySeverity(LintWarn) returned warning with severity %s", w.Severity)
		}
	}
	if err := ws.AsError(LintHigh); err == nil {
		t.Error("expected AsError(LintHigh) to return error for unreachable MinScore")
	}
}

// helpers

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
