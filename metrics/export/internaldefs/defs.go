package internaldefs

import (
	navguard "github.com/dineflow/navguard"
)

// CounterDef defines a public type used by navguard APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   navguard.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by navguard APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   navguard.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session guard.
var CounterDefs = []CounterDef{
	{ID: navguard.MetricSessionStored, Name: "navguard_session_stored_total", Help: "Successfully persisted session triples."},
	{ID: navguard.MetricSessionCleared, Name: "navguard_session_cleared_total", Help: "Cleared session triples."},
	{ID: navguard.MetricSessionExpired, Name: "navguard_session_expired_total", Help: "Sessions invalidated because the stored token expired."},
	{ID: navguard.MetricTokenUndecodable, Name: "navguard_token_undecodable_total", Help: "Stored tokens kept despite decode failure."},
	{ID: navguard.MetricStorageFailure, Name: "navguard_storage_failure_total", Help: "Session storage operations that failed."},
	{ID: navguard.MetricInitialize, Name: "navguard_initialize_total", Help: "Session initialization passes."},
	{ID: navguard.MetricValidateSuccess, Name: "navguard_validate_success_total", Help: "Token validations that found the session usable."},
	{ID: navguard.MetricValidateFailure, Name: "navguard_validate_failure_total", Help: "Token validations that invalidated the session."},
	{ID: navguard.MetricLogout, Name: "navguard_logout_total", Help: "Logout operations."},
	{ID: navguard.MetricAlertShown, Name: "navguard_alert_shown_total", Help: "Session-expiry alerts surfaced to the user."},
}

// HistogramDefs is an exported constant or variable used by the session guard.
var HistogramDefs = []HistogramDef{
	{ID: navguard.MetricValidateLatency, Name: "navguard_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session guard.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session guard.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
