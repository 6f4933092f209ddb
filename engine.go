package goCred

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/MrEthical07/goCred/denylist"
	"github.com/MrEthical07/goCred/generator"
	"github.com/MrEthical07/goCred/internal/rate"
	"github.com/MrEthical07/goCred/password"
)

// Engine composes the analyzer, generator, digest service and credential hasher
// with denylist lookups, throttling, metrics and audit. Build one with [New];
// all methods are safe for concurrent use.
type Engine struct {
	config    Config
	generator *generator.Generator
	random    io.Reader
	denylist  denylist.Checker
	throttle  *rate.Limiter
	hasher    *password.Argon2
	audit     *auditDispatcher
	metrics   *Metrics
	logger    *slog.Logger
	closed    atomic.Bool
}

// Close stops the audit dispatcher after draining queued events. Later calls
// to operations that need the engine return ErrEngineNotReady.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	e.logger.Debug("engine closed", slog.Uint64("audit_dropped", e.AuditDropped()))
}

// AuditDropped returns how many audit events were discarded because the buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the current counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	var m *Metrics
	if e != nil {
		m = e.metrics
	}
	return m.Snapshot()
}

// SetLatencyObserver forwards every generation latency sample to fn. Samples
// are only produced when latency histograms are enabled. A nil fn removes the
// observer.
func (e *Engine) SetLatencyObserver(fn LatencyObserver) {
	if e == nil {
		return
	}
	e.metrics.SetLatencyObserver(fn)
}

// Config returns a copy of the effective configuration.
func (e *Engine) Config() Config {
	if e == nil {
		return defaultConfig()
	}
	return cloneConfig(e.config)
}

func (e *Engine) ready() error {
	if e == nil || e.closed.Load() {
		return ErrEngineNotReady
	}
	return nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricAdd(id MetricID, n int) {
	if e == nil || e.metrics == nil || n <= 0 {
		return
	}
	e.metrics.Add(id, uint64(n))
}

// logAttrs returns the request-scoped attributes attached to every log record.
func logAttrs(ctx context.Context) []any {
	attrs := make([]any, 0, 2)
	if id := clientIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("client_id", id))
	}
	if id := requestIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	return attrs
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
