package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so repositories run
// unchanged inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	repos
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, repos: repos{db: pool}}
}

// WithinTx runs fn in a single Postgres transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(repos{db: tx})
	})
}

func (s *Store) Close() { s.pool.Close() }

type repos struct{ db DBTX }

func (r repos) Users() repository.UserRepository          { return &UserRepository{db: r.db} }
func (r repos) Farmers() repository.FarmerRepository      { return &FarmerRepository{db: r.db} }
func (r repos) Events() repository.EventRepository        { return &EventRepository{db: r.db} }
func (r repos) Dispatches() repository.DispatchRepository { return &DispatchRepository{db: r.db} }
func (r repos) AuditLogs() repository.AuditRepository     { return &AuditRepository{db: r.db} }

var _ repository.Store = (*Store)(nil)
