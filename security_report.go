package goCred

import (
	"time"

	"github.com/MrEthical07/goCred/denylist"
	internalsecurity "github.com/MrEthical07/goCred/internal/security"
	"github.com/MrEthical07/goCred/strength"
)

// SecurityReport summarizes how an Engine is configured to protect credentials.
// It never contains passwords, digests or hashes.
type SecurityReport struct {
	Argon2                 PasswordConfigReport
	MinScore               int
	MinScoreEnforced       bool
	DenylistBackend        string
	DenylistFailClosed     bool
	ThrottleActive         bool
	ThrottleMaxPerWindow   int
	ThrottleWindow         time.Duration
	SimulatedDigestEnabled bool
	AuditEnabled           bool
	AuditLossless          bool
	MetricsEnabled         bool
	LintFindings           []string
	Hardened               bool
}

type PasswordConfigReport struct {
	Memory           uint32
	Time             uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int
}

// SecurityReport returns the posture of e. DenylistBackend is one of "none",
// "memory", "redis" or "custom".
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	cfg := e.config
	lint := cfg.Lint().BySeverity(LintWarn)

	r := internalsecurity.BuildReport(internalsecurity.ReportInput{
		Password: internalsecurity.PasswordReport{
			Memory:           cfg.Credential.Memory,
			Time:             cfg.Credential.Time,
			Parallelism:      cfg.Credential.Parallelism,
			SaltLength:       cfg.Credential.SaltLength,
			KeyLength:        cfg.Credential.KeyLength,
			MaxPasswordBytes: cfg.Credential.MaxPasswordBytes,
		},
		MinScore:               cfg.Credential.MinScore,
		MaxScore:               strength.MaxScore,
		DenylistBackend:        denylistBackend(e.denylist),
		DenylistFailOpen:       cfg.Denylist.FailOpen,
		ThrottleEnabled:        e.throttle != nil,
		ThrottleMaxPerWindow:   cfg.Throttle.MaxPerWindow,
		ThrottleWindow:         cfg.Throttle.Window(),
		SimulatedDigestEnabled: cfg.Digest.IncludeSimulated,
		AuditEnabled:           e.audit != nil,
		AuditDropIfFull:        cfg.Audit.DropIfFull,
		MetricsEnabled:         cfg.Metrics.Enabled,
		LintFindings:           lint.Codes(),
	})

	return SecurityReport{
		Argon2:                 PasswordConfigReport(r.Argon2),
		MinScore:               r.MinScore,
		MinScoreEnforced:       r.MinScoreEnforced,
		DenylistBackend:        r.DenylistBackend,
		DenylistFailClosed:     r.DenylistFailClosed,
		ThrottleActive:         r.ThrottleActive,
		ThrottleMaxPerWindow:   r.ThrottleMaxPerWindow,
		ThrottleWindow:         r.ThrottleWindow,
		SimulatedDigestEnabled: r.SimulatedDigestEnabled,
		AuditEnabled:           r.AuditEnabled,
		AuditLossless:          r.AuditLossless,
		MetricsEnabled:         r.MetricsEnabled,
		LintFindings:           r.LintFindings,
		Hardened:               r.Hardened,
	}
}

func denylistBackend(c denylist.Checker) string {
	switch c.(type) {
	case nil:
		return internalsecurity.BackendNone
	case *denylist.Memory:
		return internalsecurity.BackendMemory
	case *denylist.RedisStore:
		return internalsecurity.BackendRedis
	default:
		return internalsecurity.BackendCustom
	}
}
