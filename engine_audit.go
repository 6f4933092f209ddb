package goCred

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventAnalyze            = "analyze"
	auditEventGenerate           = "generate"
	auditEventDigest             = "digest"
	auditEventDigestVerify       = "digest_verify"
	auditEventCredentialHash     = "credential_hash"
	auditEventCredentialVerify   = "credential_verify"
	auditEventRateLimitTriggered = "rate_limit_triggered"
)

// AuditErrorCode is the stable, non-sensitive error label written to audit events.
type AuditErrorCode string

const (
	auditErrInvalidPolicy     AuditErrorCode = "invalid_policy"
	auditErrInvalidCount      AuditErrorCode = "invalid_count"
	auditErrRateLimited       AuditErrorCode = "rate_limited"
	auditErrUnavailable       AuditErrorCode = "backend_unavailable"
	auditErrUnsupported       AuditErrorCode = "unsupported_algorithm"
	auditErrMismatch          AuditErrorCode = "mismatch"
	auditErrCredentialPolicy  AuditErrorCode = "credential_policy"
	auditErrCredentialHashBad AuditErrorCode = "credential_hash_invalid"
	auditErrEngineNotReady    AuditErrorCode = "engine_not_ready"
	auditErrContextDone       AuditErrorCode = "context_done"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		ClientID:  clientIDFromContext(ctx),
		RequestID: requestIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func (e *Engine) emitRateLimit(ctx context.Context, scope string, metadataBuilder func() map[string]string) {
	e.metricInc(MetricGenerateRateLimited)
	e.emitAudit(ctx, auditEventRateLimitTriggered, false, ErrGenerationRateLimited, func() map[string]string {
		base := map[string]string{
			"scope": scope,
		}
		if metadataBuilder == nil {
			return base
		}
		for k, v := range metadataBuilder() {
			base[k] = v
		}
		return base
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidPolicy):
		return auditErrInvalidPolicy
	case errors.Is(err, ErrInvalidCount):
		return auditErrInvalidCount
	case errors.Is(err, ErrGenerationRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrGenerationUnavailable),
		errors.Is(err, ErrDenylistUnavailable):
		return auditErrUnavailable
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return auditErrUnsupported
	case errors.Is(err, errDigestMismatch),
		errors.Is(err, errCredentialMismatch):
		return auditErrMismatch
	case errors.Is(err, ErrCredentialPolicy):
		return auditErrCredentialPolicy
	case errors.Is(err, ErrCredentialHashInvalid):
		return auditErrCredentialHashBad
	case errors.Is(err, ErrEngineNotReady):
		return auditErrEngineNotReady
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return auditErrContextDone
	default:
		return auditErrInternal
	}
}
