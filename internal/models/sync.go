package models

import "time"

const (
	EventSession         = "session"
	EventWorkoutComplete = "workout_complete"
)

// SyncEvent is one entry of the outbox. Payload holds plain JSON-compatible
// values so the queue survives every export format.
type SyncEvent struct {
	ID       string         `json:"id" toml:"id" yaml:"id"`
	Type     string         `json:"type" toml:"type" yaml:"type"`
	Payload  map[string]any `json:"payload" toml:"payload" yaml:"payload"`
	QueuedAt time.Time      `json:"queuedAt" toml:"queued_at" yaml:"queuedAt"`
}
