package application

import (
	"context"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type DispatchService struct {
	deps  Deps
	audit *AuditService
}

func NewDispatchService(d Deps, audit *AuditService) *DispatchService {
	return &DispatchService{deps: d.withDefaults(), audit: audit}
}

type DispatchInput struct {
	AggregatorID string
	BuyerID      string
	TotalTonnes  float64
}

// Create records a dispatch exactly as submitted. TotalTonnes is not
// reconciled against logged events.
func (s *DispatchService) Create(ctx context.Context, p Principal, in DispatchInput) (string, error) {
	if err := AggregatorOnly.Check(p); err != nil {
		return "", err
	}
	d := &entity.Dispatch{
		ID:           s.deps.NewID(),
		AggregatorID: in.AggregatorID,
		BuyerID:      in.BuyerID,
		TotalTonnes:  in.TotalTonnes,
		CreatedAt:    s.deps.Now(),
	}
	err := createAudited(ctx, s.deps, s.audit, "create dispatch", entity.ActionDispatchCreated, p.Subject,
		func(r repository.Repositories) error { return r.Dispatches().Create(ctx, d) })
	if err != nil {
		return "", err
	}
	afterCommit(ctx, s.deps, "", d.ID, entity.NotifyDispatchCreated, p.Subject, d)
	return d.ID, nil
}
