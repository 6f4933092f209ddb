package goCred

import (
	"testing"
	"time"

	"github.com/MrEthical07/goCred/strength"
)

// analysisOutcomes mirrors the label mix a public endpoint sees: mostly weak,
// some dictionary and denylist hits.
var analysisOutcomes = [...]struct {
	label      strength.Label
	common     bool
	denylisted bool
}{
	{strength.VeryWeak, true, false},
	{strength.Weak, false, false},
	{strength.Fair, false, false},
	{strength.VeryWeak, false, true},
	{strength.Good, false, false},
	{strength.Weak, true, true},
}

func BenchmarkMetricsRecordAnalysis(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o := analysisOutcomes[i%len(analysisOutcomes)]
		m.recordAnalysis(o.label, o.common, o.denylisted)
	}
}

func BenchmarkMetricsRecordAnalysisDisabled(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o := analysisOutcomes[i%len(analysisOutcomes)]
		m.recordAnalysis(o.label, o.common, o.denylisted)
	}
}

func BenchmarkMetricsRecordAnalysisParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			o := analysisOutcomes[i%len(analysisOutcomes)]
			m.recordAnalysis(o.label, o.common, o.denylisted)
			i++
		}
	})
}

// BenchmarkMetricsGenerateBatchParallel records what one successful
// GenerateMany call of ten passwords writes.
func BenchmarkMetricsGenerateBatchParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Inc(MetricGenerateSuccess)
			m.Add(MetricPasswordsGenerated, 10)
			m.Observe(MetricGenerateLatency, 40*time.Microsecond)
		}
	})
}

func BenchmarkMetricsObserveGenerateLatency(b *testing.B) {
	latencies := [...]time.Duration{
		30 * time.Microsecond,
		800 * time.Microsecond,
		3 * time.Millisecond,
		120 * time.Millisecond,
	}

	b.Run("no observer", func(b *testing.B) {
		m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m.Observe(MetricGenerateLatency, latencies[i%len(latencies)])
		}
	})

	b.Run("observer", func(b *testing.B) {
		m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
		var total time.Duration
		m.SetLatencyObserver(func(_ MetricID, d time.Duration) { total += d })
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m.Observe(MetricGenerateLatency, latencies[i%len(latencies)])
		}
		_ = total
	})
}

func BenchmarkMetricsSnapshot(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})
	for i, o := range analysisOutcomes {
		m.recordAnalysis(o.label, o.common, o.denylisted)
		m.Observe(MetricGenerateLatency, time.Duration(i)*time.Millisecond)
	}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = m.Snapshot()
	}
}
