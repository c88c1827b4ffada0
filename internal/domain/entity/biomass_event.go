package entity

import "time"

// EventStatus tracks a collection through the supply chain.
// Only EventStatusCollected is assigned today.
type EventStatus string

const EventStatusCollected EventStatus = "collected"

// BiomassEvent records a single collection from a farmer.
// CarbonEstimate and RiskScore are derived once at creation and never recomputed.
type BiomassEvent struct {
	ID              string      `json:"event_id"`
	FarmerID        string      `json:"farmer_id"`
	AggregatorID    string      `json:"aggregator_id"`
	Acreage         float64     `json:"acreage"`
	EstimatedTonnes float64     `json:"estimated_tonnes"`
	GeoTag          GeoPoint    `json:"geo_tag"`
	CarbonEstimate  float64     `json:"carbon_estimate"`
	RiskScore       float64     `json:"ai_risk_score"`
	Status          EventStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}
