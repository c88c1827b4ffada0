package entity

import "time"

const (
	ActionFarmerCreated   = "Farmer Created"
	ActionEventCreated    = "Biomass Event Created"
	ActionDispatchCreated = "Dispatch Created"
)

// AuditLog is an append-only record of a state-changing action.
type AuditLog struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}
