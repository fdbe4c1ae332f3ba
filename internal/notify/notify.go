package notify

import "context"

// Notifier delivers an alert somewhere. Implementations should treat
// delivery as best-effort; the caller never retries.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans an alert out to several notifiers, returning the first
// error encountered after trying all of them.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, title, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
