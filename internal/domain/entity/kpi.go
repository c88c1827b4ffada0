package entity

// KPI is the dashboard aggregate, recomputed from a full scan on every request.
type KPI struct {
	TotalFarmers        int64   `json:"total_farmers"`
	TotalEvents         int64   `json:"total_events"`
	TotalBiomassTonnes  float64 `json:"total_biomass_tonnes"`
	TotalCarbonEstimate float64 `json:"total_carbon_estimate"`
}
