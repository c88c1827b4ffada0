//go:build integration

package postgres

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("biomass_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, Migrate(dsn, migrationsDir(t), logger))

	pool, err := NewPool(ctx, PoolOptions{DSN: dsn})
	require.NoError(t, err)
	s := NewStore(pool)
	t.Cleanup(s.Close)
	return s
}

func TestStore_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("users keep duplicates and return the earliest", func(t *testing.T) {
		first := &entity.User{ID: uuid.NewString(), Email: "dup@x.com", Password: "h1", Role: entity.RoleAggregator, CreatedAt: now.Add(-time.Hour)}
		second := &entity.User{ID: uuid.NewString(), Email: "dup@x.com", Password: "h2", Role: entity.RoleAdmin, CreatedAt: now}
		require.NoError(t, s.Users().Create(ctx, first))
		require.NoError(t, s.Users().Create(ctx, second))

		got, err := s.Users().GetByEmail(ctx, "dup@x.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, entity.RoleAggregator, got.Role)
		assert.True(t, first.CreatedAt.Equal(got.CreatedAt), "created_at comes from the application clock")

		_, err = s.Users().GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("transaction commits record and audit together", func(t *testing.T) {
		ev := &entity.BiomassEvent{
			ID: uuid.NewString(), FarmerID: "f1", AggregatorID: "a@x.com",
			Acreage: 10, EstimatedTonnes: 20, CarbonEstimate: 30, RiskScore: 0.2,
			Status: entity.EventStatusCollected, CreatedAt: now,
		}
		err := s.WithinTx(ctx, func(r repository.Repositories) error {
			if err := r.Events().Create(ctx, ev); err != nil {
				return err
			}
			return r.AuditLogs().Append(ctx, &entity.AuditLog{Action: entity.ActionEventCreated, Actor: "a@x.com", Timestamp: now})
		})
		require.NoError(t, err)

		events, err := s.Events().List(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, ev.ID, events[0].ID)
		assert.Equal(t, 30.0, events[0].CarbonEstimate)
		assert.Equal(t, entity.EventStatusCollected, events[0].Status)

		logs, err := s.AuditLogs().List(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, entity.ActionEventCreated, logs[0].Action)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithinTx(ctx, func(r repository.Repositories) error {
			if err := r.Farmers().Create(ctx, &entity.Farmer{ID: uuid.NewString(), Name: "F", CreatedAt: now}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		n, err := s.Farmers().Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("dispatch insert", func(t *testing.T) {
		require.NoError(t, s.Dispatches().Create(ctx, &entity.Dispatch{
			ID: uuid.NewString(), AggregatorID: "agg", BuyerID: "buyer", TotalTonnes: 12.5, CreatedAt: now,
		}))
	})
}
