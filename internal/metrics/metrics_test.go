package metrics

import (
	"testing"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

func TestMetrics_ObserveResult(t *testing.T) {
	m := New()

	m.ObserveResult(domain.ProbeResult{
		Outcome:        domain.Outcome{Kind: domain.KindSuccess, StatusCode: 200},
		ResponseTimeMS: 120,
	})
	m.ObserveResult(domain.ProbeResult{
		Outcome: domain.Outcome{Kind: domain.KindTimeout},
	})
	m.ObserveResult(domain.ProbeResult{
		Outcome: domain.Outcome{Kind: domain.KindTimeout},
	})
	m.ObserveRound(250 * time.Millisecond)

	mfs, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]float64{}
	for _, mf := range mfs {
		for _, mm := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range mm.GetLabel() {
				key += ":" + lp.GetValue()
			}
			switch {
			case mm.GetCounter() != nil:
				byName[key] = mm.GetCounter().GetValue()
			case mm.GetHistogram() != nil:
				byName[key] = float64(mm.GetHistogram().GetSampleCount())
			}
		}
	}

	if got := byName["sitecheck_probes_total:success"]; got != 1 {
		t.Fatalf("want 1 success probe, got %v", got)
	}
	if got := byName["sitecheck_probes_total:timeout"]; got != 2 {
		t.Fatalf("want 2 timeout probes, got %v", got)
	}
	if got := byName["sitecheck_probe_duration_seconds"]; got != 3 {
		t.Fatalf("want 3 duration samples, got %v", got)
	}
	if got := byName["sitecheck_rounds_total"]; got != 1 {
		t.Fatalf("want 1 round, got %v", got)
	}
	if got := byName["sitecheck_round_duration_seconds"]; got != 1 {
		t.Fatalf("want 1 round duration sample, got %v", got)
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// two instances must never collide on registration
	a, b := New(), New()
	a.ObserveRound(time.Millisecond)
	if a.Registry() == b.Registry() {
		t.Fatal("each Metrics must own its registry")
	}
}
