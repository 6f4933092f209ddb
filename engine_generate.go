package goCred

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/MrEthical07/goCred/generator"
	"github.com/MrEthical07/goCred/internal/rate"
	"github.com/MrEthical07/goCred/strength"
)

// Generate produces one password satisfying policy. Policy.Length must not
// exceed Generator.MaxLength. With Throttle.Enabled the call is charged one
// password against the client id carried by ctx.
func (e *Engine) Generate(ctx context.Context, policy generator.Policy) (string, error) {
	out, err := e.generate(ctx, policy, 1)
	if err != nil {
		return "", err
	}
	return out[0], nil
}

// GenerateMany produces count independent passwords. count must lie in
// [0, Generator.MaxBatch]; the throttle is charged count passwords up front.
func (e *Engine) GenerateMany(ctx context.Context, policy generator.Policy, count int) ([]string, error) {
	return e.generate(ctx, policy, count)
}

// GenerateWithReport produces one password and scores it with the built-in
// rules. The denylist is not consulted for freshly generated passwords.
func (e *Engine) GenerateWithReport(ctx context.Context, policy generator.Policy) (generator.Report, error) {
	pw, err := e.Generate(ctx, policy)
	if err != nil {
		return generator.Report{}, err
	}
	return generator.Report{Password: pw, Strength: strength.Analyze(pw)}, nil
}

func (e *Engine) generate(ctx context.Context, policy generator.Policy, count int) ([]string, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		if e.metrics != nil {
			e.metrics.Observe(MetricGenerateLatency, time.Since(start))
		}
	}()

	meta := func() map[string]string {
		return map[string]string{
			"count":   strconv.Itoa(count),
			"length":  strconv.Itoa(policy.Length),
			"classes": policyClasses(policy),
		}
	}

	if err := e.checkGenerateRequest(policy, count); err != nil {
		e.metricInc(MetricGenerateInvalidPolicy)
		e.emitAudit(ctx, auditEventGenerate, false, err, meta)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		e.emitAudit(ctx, auditEventGenerate, false, err, meta)
		return nil, err
	}

	if err := e.consumeGenerationBudget(ctx, count); err != nil {
		if errors.Is(err, ErrGenerationRateLimited) {
			e.emitRateLimit(ctx, "generate", meta)
		} else {
			e.metricInc(MetricGenerateFailure)
		}
		e.emitAudit(ctx, auditEventGenerate, false, err, meta)
		return nil, err
	}

	out, err := e.generator.GenerateMany(policy, count)
	if err != nil {
		e.metricInc(MetricGenerateFailure)
		e.logger.Error("password generation failed",
			append(logAttrs(ctx), slog.String("error", err.Error()))...)
		e.emitAudit(ctx, auditEventGenerate, false, err, meta)
		return nil, err
	}

	e.metricInc(MetricGenerateSuccess)
	e.metricAdd(MetricPasswordsGenerated, len(out))
	e.emitAudit(ctx, auditEventGenerate, true, nil, meta)

	return out, nil
}

func (e *Engine) checkGenerateRequest(policy generator.Policy, count int) error {
	if count < 0 || count > e.config.Generator.MaxBatch {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidCount, count, e.config.Generator.MaxBatch)
	}
	if policy.Length > e.config.Generator.MaxLength {
		return fmt.Errorf("%w: length %d exceeds maximum %d", ErrInvalidPolicy, policy.Length, e.config.Generator.MaxLength)
	}
	return policy.Validate()
}

// consumeGenerationBudget charges count passwords to the caller. A zero count
// is never charged.
func (e *Engine) consumeGenerationBudget(ctx context.Context, count int) error {
	if e.throttle == nil || count == 0 {
		return nil
	}

	clientID := clientIDFromContext(ctx)
	if clientID == "" {
		clientID = e.config.Throttle.AnonymousClientID
	}

	err := e.throttle.Consume(ctx, clientID, count)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rate.ErrRateLimited):
		return ErrGenerationRateLimited
	case errors.Is(err, rate.ErrRedisUnavailable):
		e.logger.Error("generation throttle unavailable",
			append(logAttrs(ctx), slog.String("error", err.Error()))...)
		return fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	default:
		return err
	}
}

func policyClasses(p generator.Policy) string {
	b := make([]byte, 0, 4)
	if p.UseUpper {
		b = append(b, 'U')
	}
	if p.UseLower {
		b = append(b, 'L')
	}
	if p.UseDigits {
		b = append(b, 'D')
	}
	if p.UseSpecial {
		b = append(b, 'S')
	}
	return string(b)
}

// GenerationRemaining returns how many passwords the client id carried by ctx
// may still generate in the current window. Without a throttle it returns
// Throttle.MaxPerWindow.
func (e *Engine) GenerationRemaining(ctx context.Context) (int, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}
	if e.throttle == nil {
		return e.config.Throttle.MaxPerWindow, nil
	}

	clientID := clientIDFromContext(ctx)
	if clientID == "" {
		clientID = e.config.Throttle.AnonymousClientID
	}

	n, err := e.throttle.Remaining(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return n, nil
}

// ResetGenerationBudget clears the current window for clientID.
func (e *Engine) ResetGenerationBudget(ctx context.Context, clientID string) error {
	if err := e.ready(); err != nil {
		return err
	}
	if e.throttle == nil {
		return nil
	}
	if err := e.throttle.Reset(ctx, clientID); err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return nil
}
