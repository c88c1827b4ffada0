package memory

import (
	"context"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type userRepo struct{ v view }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.v.write(ctx, func(d *dataset) { d.users = append(d.users, *u) })
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := r.v.read(ctx, func(d *dataset) {
		for i := range d.users {
			if d.users[i].Email == email {
				u := d.users[i]
				found = &u
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

type farmerRepo struct{ v view }

func (r farmerRepo) Create(ctx context.Context, f *entity.Farmer) error {
	return r.v.write(ctx, func(d *dataset) { d.farmers = append(d.farmers, *f) })
}

func (r farmerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.v.read(ctx, func(d *dataset) { n = int64(len(d.farmers)) })
	return n, err
}

type eventRepo struct{ v view }

func (r eventRepo) Create(ctx context.Context, e *entity.BiomassEvent) error {
	return r.v.write(ctx, func(d *dataset) { d.events = append(d.events, *e) })
}

func (r eventRepo) List(ctx context.Context) ([]entity.BiomassEvent, error) {
	var out []entity.BiomassEvent
	err := r.v.read(ctx, func(d *dataset) { out = append([]entity.BiomassEvent(nil), d.events...) })
	return out, err
}

type dispatchRepo struct{ v view }

func (r dispatchRepo) Create(ctx context.Context, dp *entity.Dispatch) error {
	return r.v.write(ctx, func(d *dataset) { d.dispatches = append(d.dispatches, *dp) })
}

type auditRepo struct{ v view }

func (r auditRepo) Append(ctx context.Context, l *entity.AuditLog) error {
	return r.v.write(ctx, func(d *dataset) { d.audit = append(d.audit, *l) })
}

func (r auditRepo) List(ctx context.Context) ([]entity.AuditLog, error) {
	var out []entity.AuditLog
	err := r.v.read(ctx, func(d *dataset) { out = append([]entity.AuditLog(nil), d.audit...) })
	return out, err
}
