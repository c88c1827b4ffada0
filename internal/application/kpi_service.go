package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

type KPIService struct {
	deps Deps
}

func NewKPIService(d Deps) *KPIService {
	return &KPIService{deps: d.withDefaults()}
}

// Dashboard scans farmers and events on every call. Sums are accumulated in
// decimal so totals of rounded values stay exact.
func (s *KPIService) Dashboard(ctx context.Context, p Principal) (entity.KPI, error) {
	if err := DashboardViewers.Check(p); err != nil {
		return entity.KPI{}, err
	}
	farmers, err := s.deps.Store.Farmers().Count(ctx)
	if err != nil {
		return entity.KPI{}, storageErr("count farmers", err)
	}
	events, err := s.deps.Store.Events().List(ctx)
	if err != nil {
		return entity.KPI{}, storageErr("list biomass events", err)
	}

	tonnes, carbon := decimal.Zero, decimal.Zero
	for _, e := range events {
		// rows written before the overflow check existed are left out of the sums
		if !finite(e.EstimatedTonnes) || !finite(e.CarbonEstimate) {
			s.deps.Logger.WithField("event_id", e.ID).Warn("skipping non-finite biomass event in KPI totals")
			continue
		}
		tonnes = tonnes.Add(decimal.NewFromFloat(e.EstimatedTonnes))
		carbon = carbon.Add(decimal.NewFromFloat(e.CarbonEstimate))
	}
	return entity.KPI{
		TotalFarmers:        farmers,
		TotalEvents:         int64(len(events)),
		TotalBiomassTonnes:  tonnes.InexactFloat64(),
		TotalCarbonEstimate: carbon.InexactFloat64(),
	}, nil
}
