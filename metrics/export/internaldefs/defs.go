package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef binds a MetricID to its exported name.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// HistogramDef binds a latency MetricID to its exported name.
type HistogramDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in MetricID order.
var CounterDefs = []CounterDef{
	{ID: goCred.MetricAnalyzeTotal, Name: "gocred_analyze_total", Help: "Completed password analyses."},
	{ID: goCred.MetricAnalyzeWeak, Name: "gocred_analyze_weak_total", Help: "Analyses labelled Very Weak or Weak."},
	{ID: goCred.MetricAnalyzeCommon, Name: "gocred_analyze_common_total", Help: "Analyses matching the built-in common password list."},
	{ID: goCred.MetricAnalyzeDenylisted, Name: "gocred_analyze_denylisted_total", Help: "Analyses matching the external denylist."},
	{ID: goCred.MetricDenylistUnavailable, Name: "gocred_denylist_unavailable_total", Help: "Denylist backend failures."},
	{ID: goCred.MetricGenerateSuccess, Name: "gocred_generate_success_total", Help: "Successful generation calls."},
	{ID: goCred.MetricPasswordsGenerated, Name: "gocred_passwords_generated_total", Help: "Passwords returned by generation calls."},
	{ID: goCred.MetricGenerateInvalidPolicy, Name: "gocred_generate_invalid_policy_total", Help: "Generation calls rejected for policy or count."},
	{ID: goCred.MetricGenerateRateLimited, Name: "gocred_generate_rate_limited_total", Help: "Generation calls rejected by the throttle."},
	{ID: goCred.MetricGenerateFailure, Name: "gocred_generate_failure_total", Help: "Generation calls failed by the throttle backend or random source."},
	{ID: goCred.MetricDigestComputed, Name: "gocred_digest_computed_total", Help: "Digest sets computed."},
	{ID: goCred.MetricDigestVerifySuccess, Name: "gocred_digest_verify_success_total", Help: "Matching digest verifications."},
	{ID: goCred.MetricDigestVerifyFailure, Name: "gocred_digest_verify_failure_total", Help: "Mismatching or unsupported digest verifications."},
	{ID: goCred.MetricCredentialHashed, Name: "gocred_credential_hashed_total", Help: "Credentials hashed with Argon2id."},
	{ID: goCred.MetricCredentialPolicyRejected, Name: "gocred_credential_policy_rejected_total", Help: "Credentials rejected by the hashing policy."},
	{ID: goCred.MetricCredentialVerifySuccess, Name: "gocred_credential_verify_success_total", Help: "Matching credential verifications."},
	{ID: goCred.MetricCredentialVerifyFailure, Name: "gocred_credential_verify_failure_total", Help: "Mismatching or malformed credential verifications."},
	{ID: goCred.MetricCredentialUpgradeNeeded, Name: "gocred_credential_upgrade_needed_total", Help: "Stored hashes reported as needing a rehash."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricGenerateLatency, Name: "gocred_generate_latency_seconds", Help: "Password generation latency."},
}

// HistogramBounds are the finite bucket upper bounds in seconds, matching the
// engine's 1, 2, 5, 10, 25, 50 and 100 ms buckets. The eighth bucket is +Inf.
var HistogramBounds = []float64{0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1}

// Histogram is one latency histogram read from a snapshot.
type Histogram struct {
	// Cumulative holds running bucket totals; the last entry is the +Inf bucket.
	Cumulative [8]uint64
	Count      uint64
	SumSeconds float64
}

// ReadHistogram extracts the histogram for id from s. Missing data reads as
// an empty histogram.
func ReadHistogram(s goCred.MetricsSnapshot, id goCred.MetricID) Histogram {
	var raw [8]uint64
	copy(raw[:], s.Histograms[id])

	var h Histogram
	var running uint64
	for i, n := range raw {
		running += n
		h.Cumulative[i] = running
	}
	h.Count = running
	h.SumSeconds = s.HistogramSums[id].Seconds()
	return h
}
