// Package memory is a process-local Store used for tests and for running the
// API without Postgres (STORE_DRIVER=memory). Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type Store struct {
	mu   sync.RWMutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: &dataset{}}
}

func (s *Store) Users() repository.UserRepository          { return userRepo{s.view()} }
func (s *Store) Farmers() repository.FarmerRepository      { return farmerRepo{s.view()} }
func (s *Store) Events() repository.EventRepository        { return eventRepo{s.view()} }
func (s *Store) Dispatches() repository.DispatchRepository { return dispatchRepo{s.view()} }
func (s *Store) AuditLogs() repository.AuditRepository     { return auditRepo{s.view()} }

func (s *Store) Close() {}

func (s *Store) view() view { return view{mu: &s.mu, data: s.data} }

// WithinTx holds the write lock for the duration of fn and works on a copy of
// the dataset, which replaces the live one only if fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn(txRepos{view{data: staged}}); err != nil {
		return err
	}
	*s.data = *staged
	return nil
}

type txRepos struct{ v view }

func (t txRepos) Users() repository.UserRepository          { return userRepo{t.v} }
func (t txRepos) Farmers() repository.FarmerRepository      { return farmerRepo{t.v} }
func (t txRepos) Events() repository.EventRepository        { return eventRepo{t.v} }
func (t txRepos) Dispatches() repository.DispatchRepository { return dispatchRepo{t.v} }
func (t txRepos) AuditLogs() repository.AuditRepository     { return auditRepo{t.v} }

// view is a handle on a dataset. mu is nil inside a transaction because the
// store lock is already held by WithinTx.
type view struct {
	mu   *sync.RWMutex
	data *dataset
}

func (v view) read(ctx context.Context, fn func(*dataset)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.mu != nil {
		v.mu.RLock()
		defer v.mu.RUnlock()
	}
	fn(v.data)
	return nil
}

func (v view) write(ctx context.Context, fn func(*dataset)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.mu != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
	}
	fn(v.data)
	return nil
}

var (
	_ repository.Store        = (*Store)(nil)
	_ repository.Repositories = txRepos{}
)
