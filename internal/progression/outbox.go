package progression

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/misterclayt0n/warrior/internal/models"
)

// enqueue appends a sync event as part of the running mutation, so the event
// is persisted together with the change it describes.
func (t *Tracker) enqueue(st *models.State, typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("Failed to encode %s event: %w", typ, err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("Failed to encode %s event: %w", typ, err)
	}

	st.SyncQueue = append(st.SyncQueue, models.SyncEvent{
		ID:       t.newID(),
		Type:     typ,
		Payload:  body,
		QueuedAt: t.now().UTC(),
	})
	return nil
}

// Pending returns a copy of the queued events in FIFO order.
func (t *Tracker) Pending() []models.SyncEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.SyncEvent, len(t.state.SyncQueue))
	copy(out, t.state.SyncQueue)
	return out
}

// Ack removes a delivered batch from the queue in one step. Events queued
// after the batch was taken stay in place.
func (t *Tracker) Ack(ctx context.Context, batch []models.SyncEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	sent := make(map[string]struct{}, len(batch))
	for _, ev := range batch {
		sent[ev.ID] = struct{}{}
	}

	return t.mutate(ctx, func(st *models.State) error {
		kept := make([]models.SyncEvent, 0, len(st.SyncQueue))
		for _, ev := range st.SyncQueue {
			if _, ok := sent[ev.ID]; !ok {
				kept = append(kept, ev)
			}
		}
		st.SyncQueue = kept
		return nil
	})
}
