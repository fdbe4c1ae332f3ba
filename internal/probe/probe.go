package probe

import (
	"context"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Attempt is the outcome of a single probe attempt plus how long that
// attempt took.
type Attempt struct {
	Outcome domain.Outcome
	Elapsed time.Duration
}

// Checker performs one probe attempt against a target.
type Checker interface {
	Check(ctx context.Context, t domain.Target) Attempt
}

// Prober runs a full probe under some retry policy and reports the
// terminal attempt plus how many attempts it took to get there.
type Prober interface {
	Probe(ctx context.Context, t domain.Target) (Attempt, int)
}
