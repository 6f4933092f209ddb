package goCred

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/MrEthical07/goCred/strength"
)

// Analyze scores password. When the denylist is enabled a hit is scored like a
// built-in dictionary word. A denylist backend failure returns
// ErrDenylistUnavailable unless Denylist.FailOpen is set, in which case the
// password is scored without the lookup.
func (e *Engine) Analyze(ctx context.Context, password string) (strength.Result, error) {
	if err := e.ready(); err != nil {
		return strength.Result{}, err
	}

	denylisted, err := e.checkDenylist(ctx, password)
	if err != nil {
		e.emitAudit(ctx, auditEventAnalyze, false, err, nil)
		return strength.Result{}, err
	}

	res := strength.AnalyzeWithOptions(password, strength.Options{Denylisted: denylisted})

	e.metrics.recordAnalysis(res.Strength, strength.IsCommon(password), denylisted)

	e.emitAudit(ctx, auditEventAnalyze, true, nil, func() map[string]string {
		return map[string]string{
			"strength":   res.Strength.String(),
			"denylisted": strconv.FormatBool(denylisted),
			"flagged":    strconv.Itoa(len(res.FlaggedPatterns)),
		}
	})

	return res, nil
}

// checkDenylist reports whether password is on the external denylist. It is
// false whenever no denylist is configured.
func (e *Engine) checkDenylist(ctx context.Context, password string) (bool, error) {
	if e.denylist == nil {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	listed, err := e.denylist.Contains(ctx, password)
	if err == nil {
		return listed, nil
	}

	e.metricInc(MetricDenylistUnavailable)
	if e.config.Denylist.FailOpen {
		e.logger.Warn("denylist lookup failed, scoring without it",
			append(logAttrs(ctx), slog.String("error", err.Error()))...)
		return false, nil
	}

	e.logger.Error("denylist lookup failed",
		append(logAttrs(ctx), slog.String("error", err.Error()))...)
	return false, fmt.Errorf("%w: %v", ErrDenylistUnavailable, err)
}
