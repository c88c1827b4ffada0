package application

import (
	"context"
	"math"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/estimate"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type EventService struct {
	deps  Deps
	audit *AuditService
	index string
}

func NewEventService(d Deps, audit *AuditService, index string) *EventService {
	return &EventService{deps: d.withDefaults(), audit: audit, index: index}
}

type EventInput struct {
	FarmerID        string
	Acreage         float64
	EstimatedTonnes float64
	Latitude        float64
	Longitude       float64
}

type EventResult struct {
	EventID        string  `json:"event_id"`
	CarbonEstimate float64 `json:"carbon_estimate"`
	RiskScore      float64 `json:"risk_score"`
}

// Create logs a collection. The aggregator is always the caller, and
// FarmerID is stored without checking that the farmer exists.
func (s *EventService) Create(ctx context.Context, p Principal, in EventInput) (EventResult, error) {
	if err := AggregatorOnly.Check(p); err != nil {
		return EventResult{}, err
	}
	carbon := estimate.CarbonEstimate(in.EstimatedTonnes)
	risk := estimate.AnomalyScore(in.Acreage, in.EstimatedTonnes)
	if !finite(carbon) {
		return EventResult{}, &InputError{Field: "estimated_tonnes", Message: "is too large"}
	}
	if !finite(risk) {
		return EventResult{}, &InputError{Field: "acreage", Message: "is out of range"}
	}
	e := &entity.BiomassEvent{
		ID:              s.deps.NewID(),
		FarmerID:        in.FarmerID,
		AggregatorID:    p.Subject,
		Acreage:         in.Acreage,
		EstimatedTonnes: in.EstimatedTonnes,
		GeoTag:          entity.GeoPoint{Lat: in.Latitude, Lng: in.Longitude},
		CarbonEstimate:  carbon,
		RiskScore:       risk,
		Status:          entity.EventStatusCollected,
		CreatedAt:       s.deps.Now(),
	}
	err := createAudited(ctx, s.deps, s.audit, "create biomass event", entity.ActionEventCreated, p.Subject,
		func(r repository.Repositories) error { return r.Events().Create(ctx, e) })
	if err != nil {
		return EventResult{}, err
	}
	if e.RiskScore >= 1 {
		s.deps.Logger.WithField("event_id", e.ID).WithField("risk_score", e.RiskScore).Warn("high anomaly score on biomass event")
	}
	afterCommit(ctx, s.deps, s.index, e.ID, entity.NotifyEventCreated, p.Subject, e)
	return EventResult{EventID: e.ID, CarbonEstimate: e.CarbonEstimate, RiskScore: e.RiskScore}, nil
}

func finite(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
