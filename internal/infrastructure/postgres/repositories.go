package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type UserRepository struct{ db DBTX }

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Email, u.Password, string(u.Role), u.CreatedAt)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	var role string
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
		ORDER BY seq
		LIMIT 1
	`, email).Scan(&u.ID, &u.Email, &u.Password, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

type FarmerRepository struct{ db DBTX }

func (r *FarmerRepository) Create(ctx context.Context, f *entity.Farmer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO farmers (farmer_id, name, mobile, land_area, crop_type, geo_lat, geo_lng, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, f.ID, f.Name, f.Mobile, f.LandArea, f.CropType, f.GeoLocation.Lat, f.GeoLocation.Lng, f.CreatedAt)
	return err
}

func (r *FarmerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM farmers`).Scan(&n)
	return n, err
}

type EventRepository struct{ db DBTX }

func (r *EventRepository) Create(ctx context.Context, e *entity.BiomassEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO biomass_events (
			event_id, farmer_id, aggregator_id, acreage, estimated_tonnes,
			geo_lat, geo_lng, carbon_estimate, ai_risk_score, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID, e.FarmerID, e.AggregatorID, e.Acreage, e.EstimatedTonnes,
		e.GeoTag.Lat, e.GeoTag.Lng, e.CarbonEstimate, e.RiskScore, string(e.Status), e.CreatedAt)
	return err
}

func (r *EventRepository) List(ctx context.Context) ([]entity.BiomassEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT event_id::text, farmer_id, aggregator_id, acreage, estimated_tonnes,
		       geo_lat, geo_lng, carbon_estimate, ai_risk_score, status, created_at
		FROM biomass_events
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.BiomassEvent
	for rows.Next() {
		var e entity.BiomassEvent
		var status string
		if err := rows.Scan(&e.ID, &e.FarmerID, &e.AggregatorID, &e.Acreage, &e.EstimatedTonnes,
			&e.GeoTag.Lat, &e.GeoTag.Lng, &e.CarbonEstimate, &e.RiskScore, &status, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = entity.EventStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

type DispatchRepository struct{ db DBTX }

func (r *DispatchRepository) Create(ctx context.Context, d *entity.Dispatch) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO dispatches (dispatch_id, aggregator_id, buyer_id, total_tonnes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.AggregatorID, d.BuyerID, d.TotalTonnes, d.CreatedAt)
	return err
}

type AuditRepository struct{ db DBTX }

func (r *AuditRepository) Append(ctx context.Context, l *entity.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (action, actor, timestamp)
		VALUES ($1, $2, $3)
	`, l.Action, l.Actor, l.Timestamp)
	return err
}

func (r *AuditRepository) List(ctx context.Context) ([]entity.AuditLog, error) {
	rows, err := r.db.Query(ctx, `SELECT action, actor, timestamp FROM audit_logs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.Action, &l.Actor, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.FarmerRepository   = (*FarmerRepository)(nil)
	_ repository.EventRepository    = (*EventRepository)(nil)
	_ repository.DispatchRepository = (*DispatchRepository)(nil)
	_ repository.AuditRepository    = (*AuditRepository)(nil)
)
