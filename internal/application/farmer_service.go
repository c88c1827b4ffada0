package application

import (
	"context"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type FarmerService struct {
	deps  Deps
	audit *AuditService
	index string
}

// NewFarmerService builds the service; index is the search index farmers are
// mirrored into, empty to skip indexing.
func NewFarmerService(d Deps, audit *AuditService, index string) *FarmerService {
	return &FarmerService{deps: d.withDefaults(), audit: audit, index: index}
}

type FarmerInput struct {
	Name      string
	Mobile    string
	LandArea  float64
	CropType  string
	Latitude  float64
	Longitude float64
}

// Create registers a farmer. Identical input always produces a new record.
func (s *FarmerService) Create(ctx context.Context, p Principal, in FarmerInput) (string, error) {
	if err := AggregatorOnly.Check(p); err != nil {
		return "", err
	}
	f := &entity.Farmer{
		ID:          s.deps.NewID(),
		Name:        in.Name,
		Mobile:      in.Mobile,
		LandArea:    in.LandArea,
		CropType:    in.CropType,
		GeoLocation: entity.GeoPoint{Lat: in.Latitude, Lng: in.Longitude},
		CreatedAt:   s.deps.Now(),
	}
	err := createAudited(ctx, s.deps, s.audit, "create farmer", entity.ActionFarmerCreated, p.Subject,
		func(r repository.Repositories) error { return r.Farmers().Create(ctx, f) })
	if err != nil {
		return "", err
	}
	afterCommit(ctx, s.deps, s.index, f.ID, entity.NotifyFarmerCreated, p.Subject, f)
	return f.ID, nil
}
