package entity

import "time"

// Dispatch is a transfer of tonnage from an aggregator to a buyer.
// All three business fields are taken from the request as-is.
type Dispatch struct {
	ID           string    `json:"dispatch_id"`
	AggregatorID string    `json:"aggregator_id"`
	BuyerID      string    `json:"buyer_id"`
	TotalTonnes  float64   `json:"total_tonnes"`
	CreatedAt    time.Time `json:"created_at"`
}
