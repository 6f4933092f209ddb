package otel

import (
	"context"
	"errors"
	"fmt"
	"time"

	goCred "github.com/MrEthical07/goCred"
	"github.com/MrEthical07/goCred/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

// MetricsSource is satisfied by *goCred.Engine.
type MetricsSource interface {
	MetricsSnapshot() goCred.MetricsSnapshot
	AuditDropped() uint64
}

// LatencySource is a MetricsSource that also streams latency samples.
// *goCred.Engine implements it.
type LatencySource interface {
	MetricsSource
	SetLatencyObserver(fn goCred.LatencyObserver)
}

type observedCounter struct {
	id         goCred.MetricID
	instrument metric.Int64ObservableCounter
}

// OTelExporter publishes engine counters as observable counters and the
// generation latency as a Float64Histogram. Counters are read from snapshots
// on each collection. Latency samples are recorded as they happen, so the
// histogram only fills when the source is a [LatencySource] with latency
// histograms enabled.
type OTelExporter struct {
	source       MetricsSource
	registration metric.Registration
	counters     []observedCounter
	auditDropped metric.Int64ObservableCounter
	latency      map[goCred.MetricID]metric.Float64Histogram
}

// NewOTelExporter registers instruments on meter that read engine.
func NewOTelExporter(meter metric.Meter, engine *goCred.Engine) (*OTelExporter, error) {
	if engine == nil {
		return nil, ErrNilSource
	}
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource registers instruments that read source. When
// source is a [LatencySource] the exporter installs itself as its latency
// observer until Close.
func NewOTelExporterFromSource(meter metric.Meter, source MetricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:   source,
		counters: make([]observedCounter, 0, len(internaldefs.CounterDefs)),
		latency:  make(map[goCred.MetricID]metric.Float64Histogram, len(internaldefs.HistogramDefs)),
	}

	observables := make([]metric.Observable, 0, len(internaldefs.CounterDefs)+1)
	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}

	auditDropped, err := meter.Int64ObservableCounter(
		"gocred_audit_dropped_total",
		metric.WithDescription("Audit events dropped by dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	exporter.auditDropped = auditDropped
	observables = append(observables, auditDropped)

	for _, def := range internaldefs.HistogramDefs {
		h, err := meter.Float64Histogram(def.Name,
			metric.WithDescription(def.Help),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(internaldefs.HistogramBounds...),
		)
		if err != nil {
			return nil, fmt.Errorf("create histogram %s: %w", def.Name, err)
		}
		exporter.latency[def.ID] = h
	}

	registration, err := meter.RegisterCallback(exporter.observe, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	exporter.registration = registration

	if ls, ok := source.(LatencySource); ok {
		ls.SetLatencyObserver(exporter.recordLatency)
	}
	return exporter, nil
}

func (e *OTelExporter) observe(_ context.Context, observer metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()
	for _, c := range e.counters {
		observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
	}
	observer.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	return nil
}

func (e *OTelExporter) recordLatency(id goCred.MetricID, d time.Duration) {
	if h, ok := e.latency[id]; ok {
		h.Record(context.Background(), d.Seconds())
	}
}

// Close unregisters the collection callback and detaches the latency observer.
func (e *OTelExporter) Close() error {
	if e == nil {
		return nil
	}
	if ls, ok := e.source.(LatencySource); ok {
		ls.SetLatencyObserver(nil)
	}
	if e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
