package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("not found")

// UserRepository stores credentials. Email is not unique; GetByEmail returns
// the earliest registration for that address.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type FarmerRepository interface {
	Create(ctx context.Context, f *entity.Farmer) error
	Count(ctx context.Context) (int64, error)
}

type EventRepository interface {
	Create(ctx context.Context, e *entity.BiomassEvent) error
	// List returns every event in insertion order.
	List(ctx context.Context) ([]entity.BiomassEvent, error)
}

type DispatchRepository interface {
	Create(ctx context.Context, d *entity.Dispatch) error
}

// AuditRepository is append-only.
type AuditRepository interface {
	Append(ctx context.Context, l *entity.AuditLog) error
	// List returns every entry in storage order.
	List(ctx context.Context) ([]entity.AuditLog, error)
}

// Repositories groups the record collections so a unit of work can hand out
// transaction-scoped instances.
type Repositories interface {
	Users() UserRepository
	Farmers() FarmerRepository
	Events() EventRepository
	Dispatches() DispatchRepository
	AuditLogs() AuditRepository
}

// Store is the persistence root. WithinTx runs fn against repositories that
// commit together when fn returns nil and roll back otherwise.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
	Close()
}
