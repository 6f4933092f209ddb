// Package otel binds goCred engine metrics to OpenTelemetry instruments.
//
// [NewOTelExporter] registers an Int64ObservableCounter per engine counter,
// read from [goCred.Engine.MetricsSnapshot] by a single collection callback.
// Generation latency is a Float64Histogram in seconds with the engine's bucket
// bounds. It is fed sample by sample through [goCred.Engine.SetLatencyObserver],
// so it carries an exact sum.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider; callers supply the Meter.
//   - Mutate engine state beyond installing and removing its latency observer.
package otel
