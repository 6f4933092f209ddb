package goCred

import (
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goCred/strength"
)

// MetricID indexes one in-process counter.
type MetricID uint16

const (
	// MetricAnalyzeTotal counts completed analyses.
	MetricAnalyzeTotal MetricID = iota
	// MetricAnalyzeWeak counts analyses labelled VeryWeak or Weak.
	MetricAnalyzeWeak
	// MetricAnalyzeCommon counts analyses clamped by the built-in dictionary.
	MetricAnalyzeCommon
	// MetricAnalyzeDenylisted counts analyses clamped by the external denylist.
	MetricAnalyzeDenylisted
	// MetricDenylistUnavailable counts denylist backend failures.
	MetricDenylistUnavailable
	// MetricGenerateSuccess counts successful Generate/GenerateMany calls.
	MetricGenerateSuccess
	// MetricPasswordsGenerated counts individual passwords returned.
	MetricPasswordsGenerated
	// MetricGenerateInvalidPolicy counts calls rejected for policy or count.
	MetricGenerateInvalidPolicy
	// MetricGenerateRateLimited counts calls rejected by the throttle.
	MetricGenerateRateLimited
	// MetricGenerateFailure counts throttle backend or random source failures.
	MetricGenerateFailure
	// MetricDigestComputed counts Digest calls.
	MetricDigestComputed
	// MetricDigestVerifySuccess counts matching Verify calls.
	MetricDigestVerifySuccess
	// MetricDigestVerifyFailure counts mismatching or unsupported Verify calls.
	MetricDigestVerifyFailure
	// MetricCredentialHashed counts successful HashCredential calls.
	MetricCredentialHashed
	// MetricCredentialPolicyRejected counts HashCredential policy rejections.
	MetricCredentialPolicyRejected
	// MetricCredentialVerifySuccess counts matching VerifyCredential calls.
	MetricCredentialVerifySuccess
	// MetricCredentialVerifyFailure counts mismatching or malformed VerifyCredential calls.
	MetricCredentialVerifyFailure
	// MetricCredentialUpgradeNeeded counts hashes reported as needing a rehash.
	MetricCredentialUpgradeNeeded
	// MetricGenerateLatency is the generation latency histogram.
	MetricGenerateLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets  [histBucketCount]uint64
	sumNanos uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters. A nil or disabled Metrics ignores writes.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
	observer      atomic.Pointer[LatencyObserver]
}

// LatencyObserver receives every latency sample Metrics records, after the
// histogram is updated. It runs on the caller's goroutine and must not block.
type LatencyObserver func(id MetricID, d time.Duration)

// MetricsSnapshot is a point-in-time copy of every counter and histogram.
// HistogramSums holds the total observed latency per histogram.
type MetricsSnapshot struct {
	Counters      map[MetricID]uint64
	Histograms    map[MetricID][]uint64
	HistogramSums map[MetricID]time.Duration
}

// NewMetrics returns a collector configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to id.
func (m *Metrics) Inc(id MetricID) {
	m.Add(id, 1)
}

// Add adds n to id.
func (m *Metrics) Add(id MetricID, n uint64) {
	if m == nil || !m.enabled || id >= metricIDCount || n == 0 {
		return
	}
	atomic.AddUint64(&m.counters[id].value, n)
}

// Observe records d in the histogram for id. Only MetricGenerateLatency has a histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricGenerateLatency {
		return
	}

	if d < 0 {
		d = 0
	}
	h := &m.histograms[id]
	atomic.AddUint64(&h.buckets[bucketIndex(d)], 1)
	atomic.AddUint64(&h.sumNanos, uint64(d))

	if fn := m.observer.Load(); fn != nil {
		(*fn)(id, d)
	}
}

// SetLatencyObserver installs fn as the latency observer, replacing any
// previous one. A nil fn removes it.
func (m *Metrics) SetLatencyObserver(fn LatencyObserver) {
	if m == nil {
		return
	}
	if fn == nil {
		m.observer.Store(nil)
		return
	}
	m.observer.Store(&fn)
}

// recordAnalysis counts one completed analysis and its outcome classes.
func (m *Metrics) recordAnalysis(label strength.Label, common, denylisted bool) {
	if !m.Enabled() {
		return
	}
	m.Inc(MetricAnalyzeTotal)
	if label <= strength.Weak {
		m.Inc(MetricAnalyzeWeak)
	}
	if common {
		m.Inc(MetricAnalyzeCommon)
	}
	if denylisted {
		m.Inc(MetricAnalyzeDenylisted)
	}
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters. Histograms are present only when latency is enabled.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:      map[MetricID]uint64{},
			Histograms:    map[MetricID][]uint64{},
			HistogramSums: map[MetricID]time.Duration{},
		}
	}

	s := MetricsSnapshot{
		Counters:      make(map[MetricID]uint64, int(metricIDCount)),
		Histograms:    make(map[MetricID][]uint64, 1),
		HistogramSums: make(map[MetricID]time.Duration, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGenerateLatency].buckets[i])
		}
		s.Histograms[MetricGenerateLatency] = buckets
		s.HistogramSums[MetricGenerateLatency] = time.Duration(atomic.LoadUint64(&m.histograms[MetricGenerateLatency].sumNanos))
	}

	return s
}

// bucketIndex maps d onto upper bounds of 1, 2, 5, 10, 25, 50, 100 ms and +Inf.
func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 1000:
		return 0
	case us <= 2000:
		return 1
	case us <= 5000:
		return 2
	case us <= 10000:
		return 3
	case us <= 25000:
		return 4
	case us <= 50000:
		return 5
	case us <= 100000:
		return 6
	default:
		return 7
	}
}
