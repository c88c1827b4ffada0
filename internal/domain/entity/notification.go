package entity

import (
	"encoding/json"
	"time"
)

const (
	NotifyFarmerCreated   = "farmer.created"
	NotifyEventCreated    = "biomass_event.created"
	NotifyDispatchCreated = "dispatch.created"
)

// Notification is published after a record commits. Payload is the record
// itself, JSON encoded.
type Notification struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}
