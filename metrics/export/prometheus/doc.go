// Package prometheus renders goCred engine metrics in Prometheus text
// exposition format.
//
// [NewPrometheusExporter] reads an [goCred.Engine] and exposes an [http.Handler].
// Counter names are prefixed gocred_*_total. When latency histograms are
// enabled, gocred_generate_latency_seconds is rendered with cumulative
// buckets, a count and the observed sum.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate engine state.
package prometheus
