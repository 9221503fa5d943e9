// Package outbox delivers queued sync events to the remote endpoint.
//
// Events are queued by the engine as part of each mutation. Delivery is
// batch-all-or-nothing and at-least-once: the whole queue is sent in one
// request and removed in one step only after the endpoint acknowledged it.
// A failed flush leaves the queue exactly as it was; the next trigger
// retries. There is no per-event retry count and no backoff.
package outbox

import (
	"context"
	"fmt"

	"github.com/misterclayt0n/warrior/internal/models"
)

// Source is the queue owner, in practice a *progression.Tracker.
type Source interface {
	Pending() []models.SyncEvent
	Ack(ctx context.Context, batch []models.SyncEvent) error
}

// Sender submits one batch to the endpoint. A nil error means the endpoint
// confirmed the whole batch.
type Sender interface {
	Send(ctx context.Context, batch []models.SyncEvent) error
}

// SyncFailure wraps a failed delivery. It is logged, never surfaced to the user.
type SyncFailure struct {
	Events int
	Err    error
}

func (e *SyncFailure) Error() string {
	return fmt.Sprintf("sync of %d events failed: %v", e.Events, e.Err)
}

func (e *SyncFailure) Unwrap() error { return e.Err }

// Flush sends the entire current queue as one batch. It returns the number
// of events delivered; zero with a nil error means there was nothing to do
// (offline or empty queue).
func Flush(ctx context.Context, src Source, sender Sender, online bool) (int, error) {
	if !online {
		return 0, nil
	}
	batch := src.Pending()
	if len(batch) == 0 {
		return 0, nil
	}

	if err := sender.Send(ctx, batch); err != nil {
		return 0, &SyncFailure{Events: len(batch), Err: err}
	}
	if err := src.Ack(ctx, batch); err != nil {
		return 0, fmt.Errorf("Failed to clear delivered events: %w", err)
	}
	return len(batch), nil
}
