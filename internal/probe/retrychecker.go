package probe

import (
	"context"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// RetryChecker re-runs the inner checker on transport-level failures.
// Success and validation failures are terminal: a header or body
// mismatch means the endpoint answered, just not with what we wanted,
// and asking again will not change that.
type RetryChecker struct {
	Inner      Checker
	MaxRetries int
	Backoff    time.Duration // linear: Backoff * attempt between tries
	DNSReason  bool          // annotate final transport errors with a DNS class
}

// Probe runs up to MaxRetries+1 attempts and reports the terminal
// one. Attempts already in flight run to their own deadline; when ctx
// is cancelled no further attempts are started and the last outcome
// stands. Elapsed covers the final attempt only.
func (r *RetryChecker) Probe(ctx context.Context, t domain.Target) (Attempt, int) {
	maxAttempts := r.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempts := 0
	var last Attempt
	for {
		attempts++
		last = r.Inner.Check(context.WithoutCancel(ctx), t)
		if !last.Outcome.Retryable() {
			return last, attempts
		}
		if attempts >= maxAttempts || ctx.Err() != nil {
			break
		}
		if r.Backoff > 0 {
			select {
			case <-ctx.Done():
				return r.annotate(t, last), attempts
			case <-time.After(r.Backoff * time.Duration(attempts)):
			}
		}
	}
	return r.annotate(t, last), attempts
}

// annotate appends the DNS classification to transport errors so the
// report can tell apart NXDOMAIN from a refused connection.
func (r *RetryChecker) annotate(t domain.Target, a Attempt) Attempt {
	if !r.DNSReason || a.Outcome.Kind != domain.KindTransportError {
		return a
	}
	a.Outcome.Reason = a.Outcome.Reason + " dns=" + string(ClassifyDNS(t.URL))
	return a
}
