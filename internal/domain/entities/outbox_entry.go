package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus tracks whether an outbox entry was handed to the broker.

type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusDispatched OutboxStatus = "dispatched"
)

// OutboxEntry is a serialized outcome event awaiting publication.
//
// Entries are written in the same DynamoDB transaction as the payment they
// describe, so the store is the single source of truth for "event must go
// out". A relay drains pending entries to SNS and marks them dispatched;
// publication is therefore at-least-once.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-index): status / created_at

type OutboxEntry struct {
	ID           string          `json:"id"`
	EventType    string          `json:"event_type"`
	Payload      json.RawMessage `json:"payload"`
	Status       OutboxStatus    `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	DispatchedAt *time.Time      `json:"dispatched_at,omitempty"`
}

// NewOutboxEntry serializes payload into a pending entry.
func NewOutboxEntry(eventType string, payload interface{}) (OutboxEntry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEntry{}, err
	}
	return OutboxEntry{
		ID:        uuid.NewString(),
		EventType: eventType,
		Payload:   body,
		Status:    OutboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
