package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
	"github.com/hamed0406/sitecheck/internal/notify"
)

type AlerterConfig struct {
	AlertOnRecovery bool
	Cooldown        time.Duration
}

// Alerter watches the result stream for up/down transitions and
// notifies on them. Down alerts respect a cooldown to suppress noisy
// repeats; recovery alerts bypass it. Only the engine's coordinator
// calls Observe, so no locking is needed.
type Alerter struct {
	notifier notify.Notifier
	cfg      AlerterConfig

	state    map[string]bool // url -> last seen up/down
	seen     map[string]bool
	lastSent map[string]time.Time
}

func NewAlerter(n notify.Notifier, cfg AlerterConfig) *Alerter {
	return &Alerter{
		notifier: n,
		cfg:      cfg,
		state:    make(map[string]bool),
		seen:     make(map[string]bool),
		lastSent: make(map[string]time.Time),
	}
}

func (a *Alerter) Observe(ctx context.Context, r domain.ProbeResult) {
	url := r.Target.URL
	up := r.Outcome.OK()
	now := time.Now()

	wasSeen := a.seen[url]
	wasUp := a.state[url]
	stateChanged := !wasSeen || wasUp != up
	a.seen[url] = true
	a.state[url] = up
	if !stateChanged {
		return
	}

	cooled := true
	if sent, ok := a.lastSent[url]; ok {
		cooled = now.Sub(sent) >= a.cfg.Cooldown
	}

	downAlert := !up && cooled
	// a target recovers only from an observed DOWN state; a healthy
	// first observation is not a recovery. Recovery bypasses cooldown.
	recoveryAlert := up && a.cfg.AlertOnRecovery && wasSeen && !wasUp

	if !downAlert && !recoveryAlert {
		return
	}

	title := "Target DOWN"
	if up {
		title = "Target RECOVERED"
	}
	text := fmt.Sprintf(
		"URL: %s\nOutcome: %s\nHTTP: %s\nLatency: %d ms\nReason: %s\nChecked: %s",
		url, r.Outcome.Kind, httpText(r.Outcome), r.ResponseTimeMS, r.Outcome.Reason,
		r.CheckedAt.Format(time.RFC3339),
	)

	// best-effort send, then remember when
	_ = a.notifier.Send(ctx, title, text)
	a.lastSent[url] = now
}

func httpText(o domain.Outcome) string {
	if o.StatusCode == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", o.StatusCode)
}
