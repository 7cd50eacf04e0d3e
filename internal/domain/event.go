package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a union lifecycle change.
type EventType string

const (
	EventUnionCreated EventType = "union.created"
	EventUnionUpdated EventType = "union.updated"
	EventUnionDeleted EventType = "union.deleted"
)

// UnionEvent is appended to the events stream after a successful write.
// Union is nil for deletions.
type UnionEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       EventType `json:"type"`
	UnionID    string    `json:"union_id"`
	Union      *Union    `json:"union,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUnionEvent stamps a new event for union id.
func NewUnionEvent(eventType EventType, id string, u *Union) UnionEvent {
	return UnionEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		UnionID:    id,
		Union:      u,
		OccurredAt: time.Now().UTC(),
	}
}
