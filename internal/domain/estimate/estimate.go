// Package estimate holds the derived-value rules applied to biomass events.
// Both functions are pure; results are rounded half away from zero to two
// decimal places on the decimal representation of the inputs.
package estimate

import "github.com/shopspring/decimal"

const (
	// CarbonFactor is tCO2e avoided per tonne of biomass collected.
	CarbonFactor = 1.5
	// ExpectedYieldPerAcre is the tonnes-per-acre heuristic used to flag anomalies.
	ExpectedYieldPerAcre = 2.5

	places = 2
)

// CarbonEstimate converts collected tonnes into CO2-equivalent avoided.
func CarbonEstimate(tonnes float64) float64 {
	return decimal.NewFromFloat(tonnes).
		Mul(decimal.NewFromFloat(CarbonFactor)).
		Round(places).
		InexactFloat64()
}

// AnomalyScore is the relative deviation of reported tonnes from the yield
// expected for the acreage. Zero acreage yields zero. The score is not capped.
func AnomalyScore(acreage, tonnes float64) float64 {
	expected := decimal.NewFromFloat(acreage).Mul(decimal.NewFromFloat(ExpectedYieldPerAcre))
	if !expected.IsPositive() {
		return 0
	}
	return expected.Sub(decimal.NewFromFloat(tonnes)).
		Abs().
		Div(expected).
		Round(places).
		InexactFloat64()
}
