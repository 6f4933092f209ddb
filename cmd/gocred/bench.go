package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goCred "github.com/MrEthical07/goCred"
	"github.com/spf13/cobra"
)

var benchCorpus = []string{
	"password",
	"P@ssw0rd",
	"Tr0ub4dor&3",
	"correct horse battery staple",
	"abc123",
	"aaa111",
	"Zq8!vR2#mK9$wL4%",
	"qwerty",
}

func newBenchCmd(env *cliEnv) *cobra.Command {
	var (
		concurrency int
		ops         int
		throttle    bool
		policy      policyFlags
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure concurrent engine throughput",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if concurrency <= 0 || ops <= 0 {
				return fmt.Errorf("%w: concurrency and ops must be > 0", errUsage)
			}

			engine, ctx, err := env.engine(cmd.Context(), func(cfg *goCred.Config) {
				cfg.Metrics.Enabled = true
				cfg.Metrics.EnableLatencyHistograms = true
				if !throttle {
					cfg.Throttle.Enabled = false
				}
			})
			if err != nil {
				return err
			}
			p := policy.apply(cmd, engine.Config().Generator.DefaultPolicy)

			analyzeStats := runPhase(ctx, ops, concurrency, func(ctx context.Context, r *rand.Rand) error {
				_, err := engine.Analyze(ctx, benchCorpus[r.Intn(len(benchCorpus))])
				return err
			})
			generateStats := runPhase(ctx, ops, concurrency, func(ctx context.Context, _ *rand.Rand) error {
				_, err := engine.Generate(ctx, p)
				return err
			})

			fmt.Fprintln(env.stderr, "---- results ----")
			printStats(env.stderr, "analyze", analyzeStats)
			printStats(env.stderr, "generate", generateStats)

			return env.writeJSON(map[string]any{
				"analyze":  analyzeStats.report(),
				"generate": generateStats.report(),
				"metrics":  engine.MetricsSnapshot(),
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&concurrency, "concurrency", 64, "number of concurrent workers")
	f.IntVar(&ops, "ops", 20000, "operations per phase (analyze + generate)")
	f.BoolVar(&throttle, "throttle", false, "keep the generation throttle enabled")
	policy.register(cmd)
	return cmd
}

// runPhase spreads ops calls of op over concurrency workers and records each
// call's latency. It stops early when ctx is canceled.
func runPhase(ctx context.Context, ops, concurrency int, op func(context.Context, *rand.Rand) error) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops || ctx.Err() != nil {
					return
				}
				t0 := time.Now()
				err := op(ctx, r)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	return computeStats(time.Since(start), latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

type phaseReport struct {
	Ops       int     `json:"ops"`
	Failures  int64   `json:"failures"`
	TotalMS   float64 `json:"total_ms"`
	OpsPerSec float64 `json:"ops_per_sec"`
	P50Micros int64   `json:"p50_us"`
	P95Micros int64   `json:"p95_us"`
	P99Micros int64   `json:"p99_us"`
}

func (s phaseStats) report() phaseReport {
	return phaseReport{
		Ops:       s.ops,
		Failures:  s.failures,
		TotalMS:   float64(s.total) / float64(time.Millisecond),
		OpsPerSec: s.opsPerS,
		P50Micros: s.p50.Microseconds(),
		P95Micros: s.p95.Microseconds(),
		P99Micros: s.p99.Microseconds(),
	}
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total, failures: failures}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(w io.Writer, name string, s phaseStats) {
	fmt.Fprintf(w, "%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
