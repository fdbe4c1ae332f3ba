package domain

// OutcomeKind classifies the terminal state of one probe attempt.
type OutcomeKind string

const (
	KindSuccess        OutcomeKind = "success"
	KindHeaderMismatch OutcomeKind = "header_mismatch"
	KindBodyMismatch   OutcomeKind = "body_mismatch"
	KindTransportError OutcomeKind = "transport_error"
	KindTimeout        OutcomeKind = "timeout"
)

// Outcome is what a single probe attempt resolved to. StatusCode is
// set whenever an HTTP response was received, including for header
// and body mismatches.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	StatusCode int         `json:"http_status,omitempty"`
	Reason     string      `json:"reason,omitempty"`
}

func (o Outcome) OK() bool { return o.Kind == KindSuccess }

// Retryable reports whether another attempt could plausibly change
// the result. Validation failures come from a reachable endpoint that
// answered; retrying would only re-read the same content.
func (o Outcome) Retryable() bool {
	return o.Kind == KindTimeout || o.Kind == KindTransportError
}

func (o Outcome) ValidationFailure() bool {
	return o.Kind == KindHeaderMismatch || o.Kind == KindBodyMismatch
}
