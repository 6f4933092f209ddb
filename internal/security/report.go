package security

import "time"

// Denylist backend names reported by BuildReport.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendCustom = "custom"
)

type PasswordReport struct {
	Memory           uint32
	Time             uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int
}

type Report struct {
	Argon2                 PasswordReport
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

type ReportInput struct {
	Password               PasswordReport
	MinScore               int
	MaxScore               int
	DenylistBackend        string
	DenylistFailOpen       bool
	ThrottleEnabled        bool
	ThrottleMaxPerWindow   int
	ThrottleWindow         time.Duration
	SimulatedDigestEnabled bool
	AuditEnabled           bool
	AuditDropIfFull        bool
	MetricsEnabled         bool
	// LintFindings are the codes of warn-or-higher lint findings.
	LintFindings []string
}

// BuildReport derives the posture flags from input. Hardened requires an
// enforceable MinScore, a fail-closed denylist, an active throttle, a lossless
// audit trail and no lint finding at warn level or above.
func BuildReport(input ReportInput) Report {
	backend := input.DenylistBackend
	if backend == "" {
		backend = BackendNone
	}

	minScoreEnforced := input.MinScore > 0 && input.MinScore <= input.MaxScore
	failClosed := backend != BackendNone && !input.DenylistFailOpen
	throttleActive := input.ThrottleEnabled && input.ThrottleMaxPerWindow > 0
	lossless := input.AuditEnabled && !input.AuditDropIfFull

	report := Report{
		Argon2:                 input.Password,
		MinScore:               input.MinScore,
		MinScoreEnforced:       minScoreEnforced,
		DenylistBackend:        backend,
		DenylistFailClosed:     failClosed,
		ThrottleActive:         throttleActive,
		SimulatedDigestEnabled: input.SimulatedDigestEnabled,
		AuditEnabled:           input.AuditEnabled,
		AuditLossless:          lossless,
		MetricsEnabled:         input.MetricsEnabled,
		LintFindings:           append([]string(nil), input.LintFindings...),
	}
	if throttleActive {
		report.ThrottleMaxPerWindow = input.ThrottleMaxPerWindow
		report.ThrottleWindow = input.ThrottleWindow
	}

	report.Hardened = minScoreEnforced &&
		failClosed &&
		throttleActive &&
		lossless &&
		!input.SimulatedDigestEnabled &&
		len(input.LintFindings) == 0

	return report
}
