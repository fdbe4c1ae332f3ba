package stats

import (
	"sync"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Record is the cumulative per-URL accumulator. UptimePercent and
// AvgResponseTimeMS are derived at snapshot time and report 0 when no
// checks have been recorded yet.
type Record struct {
	URL                 string  `json:"url"`
	Checks              int64   `json:"checks"`
	Successes           int64   `json:"successes"`
	TotalResponseTimeMS int64   `json:"total_response_time_ms"`
	UptimePercent       float64 `json:"uptime_percent"`
	AvgResponseTimeMS   float64 `json:"avg_response_time_ms"`
}

// Aggregator keeps cumulative per-URL statistics across rounds. It is
// never reset for the lifetime of a run. Updates all come from the
// engine's coordinator; the lock is there because the status API may
// take snapshots while a round is draining.
type Aggregator struct {
	mu     sync.RWMutex
	order  []string
	byURL  map[string]*Record
	latest map[string]domain.ProbeResult
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		byURL:  make(map[string]*Record),
		latest: make(map[string]domain.ProbeResult),
	}
}

func (a *Aggregator) Update(r domain.ProbeResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec := a.byURL[r.Target.URL]
	if rec == nil {
		rec = &Record{URL: r.Target.URL}
		a.byURL[r.Target.URL] = rec
		a.order = append(a.order, r.Target.URL)
	}
	rec.Checks++
	if r.Outcome.OK() {
		rec.Successes++
	}
	rec.TotalResponseTimeMS += r.ResponseTimeMS
	a.latest[r.Target.URL] = r
}

// Snapshot returns one record per URL in first-seen order, with
// uptime and average latency computed from the raw counters.
func (a *Aggregator) Snapshot() []Record {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Record, 0, len(a.order))
	for _, url := range a.order {
		rec := *a.byURL[url]
		if rec.Checks > 0 {
			rec.UptimePercent = float64(rec.Successes) * 100 / float64(rec.Checks)
			rec.AvgResponseTimeMS = float64(rec.TotalResponseTimeMS) / float64(rec.Checks)
		}
		out = append(out, rec)
	}
	return out
}

// Latest returns the most recent result per URL in first-seen order.
func (a *Aggregator) Latest() []domain.ProbeResult {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]domain.ProbeResult, 0, len(a.order))
	for _, url := range a.order {
		if r, ok := a.latest[url]; ok {
			out = append(out, r)
		}
	}
	return out
}
