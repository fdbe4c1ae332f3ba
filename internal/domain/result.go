package domain

import "time"

// ProbeResult is the record emitted for one (target, round) pair.
// Attempts counts every try including the final one; ResponseTimeMS
// is the duration of the attempt that produced the terminal outcome,
// not the sum across retries.
type ProbeResult struct {
	Target         Target    `json:"target"`
	Round          int       `json:"round"`
	Outcome        Outcome   `json:"outcome"`
	Attempts       int       `json:"attempts"`
	ResponseTimeMS int64     `json:"response_time_ms"`
	CheckedAt      time.Time `json:"checked_at"`
}
