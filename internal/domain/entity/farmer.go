package entity

import "time"

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Farmer is registered by an aggregator and never mutated afterwards.
type Farmer struct {
	ID          string    `json:"farmer_id"`
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	LandArea    float64   `json:"land_area"`
	CropType    string    `json:"crop_type"`
	GeoLocation GeoPoint  `json:"geo_location"`
	CreatedAt   time.Time `json:"created_at"`
}
