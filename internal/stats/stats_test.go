package stats

import (
	"testing"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

func result(url string, round int, kind domain.OutcomeKind, ms int64) domain.ProbeResult {
	return domain.ProbeResult{
		Target:         domain.Target{ID: domain.TargetID(url), URL: url},
		Round:          round,
		Outcome:        domain.Outcome{Kind: kind, StatusCode: 200},
		Attempts:       1,
		ResponseTimeMS: ms,
		CheckedAt:      time.Now().UTC(),
	}
}

func TestAggregator_CumulativeAcrossRounds(t *testing.T) {
	a := NewAggregator()

	a.Update(result("https://a", 1, domain.KindSuccess, 100))
	a.Update(result("https://a", 2, domain.KindTimeout, 50))
	a.Update(result("https://a", 3, domain.KindSuccess, 150))

	snap := a.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("want 1 record, got %d", len(snap))
	}
	rec := snap[0]
	if rec.Checks != 3 || rec.Successes != 2 {
		t.Fatalf("counters wrong: %+v", rec)
	}
	if rec.TotalResponseTimeMS != 300 {
		t.Fatalf("total latency wrong: %+v", rec)
	}
	wantUptime := float64(2) * 100 / 3
	if rec.UptimePercent != wantUptime {
		t.Fatalf("uptime: want %v, got %v", wantUptime, rec.UptimePercent)
	}
	if rec.AvgResponseTimeMS != 100 {
		t.Fatalf("avg: want 100, got %v", rec.AvgResponseTimeMS)
	}
}

func TestAggregator_FirstSeenOrder(t *testing.T) {
	a := NewAggregator()
	a.Update(result("https://c", 1, domain.KindSuccess, 1))
	a.Update(result("https://a", 1, domain.KindSuccess, 1))
	a.Update(result("https://b", 1, domain.KindSuccess, 1))
	a.Update(result("https://a", 2, domain.KindSuccess, 1))

	snap := a.Snapshot()
	got := []string{snap[0].URL, snap[1].URL, snap[2].URL}
	want := []string{"https://c", "https://a", "https://b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, got)
		}
	}
}

func TestAggregator_ValidationFailureCountsAsCheckNotSuccess(t *testing.T) {
	a := NewAggregator()
	a.Update(result("https://a", 1, domain.KindHeaderMismatch, 20))

	rec := a.Snapshot()[0]
	if rec.Checks != 1 || rec.Successes != 0 {
		t.Fatalf("want 1 check / 0 successes, got %+v", rec)
	}
	if rec.UptimePercent != 0 {
		t.Fatalf("uptime should be 0, got %v", rec.UptimePercent)
	}
}

func TestAggregator_Monotonic(t *testing.T) {
	a := NewAggregator()
	var prev int64
	for round := 1; round <= 5; round++ {
		a.Update(result("https://a", round, domain.KindSuccess, 10))
		rec := a.Snapshot()[0]
		if rec.Checks <= prev {
			t.Fatalf("checks must strictly grow, round %d: %d <= %d", round, rec.Checks, prev)
		}
		prev = rec.Checks
	}
}

func TestAggregator_Latest(t *testing.T) {
	a := NewAggregator()
	a.Update(result("https://a", 1, domain.KindSuccess, 10))
	a.Update(result("https://a", 2, domain.KindTimeout, 30))

	latest := a.Latest()
	if len(latest) != 1 {
		t.Fatalf("want 1 latest row, got %d", len(latest))
	}
	if latest[0].Round != 2 || latest[0].Outcome.Kind != domain.KindTimeout {
		t.Fatalf("latest should be the round-2 result, got %+v", latest[0])
	}
}

func TestAggregator_EmptySnapshot(t *testing.T) {
	a := NewAggregator()
	if got := a.Snapshot(); len(got) != 0 {
		t.Fatalf("want empty snapshot, got %d", len(got))
	}
}
