// Package prometheus provides Prometheus collectors for navguard metrics.
//
// [NewPrometheusExporter] accepts a [navguard.Controller] and exposes an [http.Handler]
// that renders all navguard counters and histograms in Prometheus text exposition format.
// Counter names are prefixed navguard_*_total; the single histogram is
// navguard_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate controller state.
package prometheus
