package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
	"github.com/oksasatya/rupaykg-biomass/internal/infrastructure/memory"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

func init() {
	helpers.PasswordCost = bcrypt.MinCost
}

var (
	aggregator = Principal{Subject: "a@x.com", Role: entity.RoleAggregator}
	admin      = Principal{Subject: "root@x.com", Role: entity.RoleAdmin}
	buyer      = Principal{Subject: "b@x.com", Role: entity.RoleBuyer}
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []entity.Notification
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, msgType string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n, ok := body.(entity.Notification); ok && n.Type == msgType {
		p.msgs = append(p.msgs, n)
	}
	return p.err
}

type recordingIndexer struct {
	mu   sync.Mutex
	docs map[string][]string
	err  error
}

func (i *recordingIndexer) Index(_ context.Context, index, id string, _ any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.docs == nil {
		i.docs = map[string][]string{}
	}
	i.docs[index] = append(i.docs[index], id)
	return i.err
}

type services struct {
	store     *memory.Store
	publisher *recordingPublisher
	indexer   *recordingIndexer
	tokens    *helpers.TokenManager
	auth      *AuthService
	audit     *AuditService
	farmers   *FarmerService
	events    *EventService
	dispatch  *DispatchService
	kpi       *KPIService
}

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newServices(t *testing.T) *services {
	t.Helper()
	return newServicesWithStore(t, memory.NewStore(), nil)
}

func newServicesWithStore(t *testing.T, mem *memory.Store, store repository.Store) *services {
	t.Helper()
	if store == nil {
		store = mem
	}
	s := &services{
		store:     mem,
		publisher: &recordingPublisher{},
		indexer:   &recordingIndexer{},
	}
	tick := fixedNow
	var mu sync.Mutex
	d := Deps{
		Store:     store,
		Logger:    helpers.NewDiscardLogger(),
		Publisher: s.publisher,
		Indexer:   s.indexer,
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			tick = tick.Add(time.Second)
			return tick
		},
	}
	s.tokens = helpers.NewTokenManager("test-secret", helpers.DefaultAccessTTL)
	s.audit = NewAuditService(d)
	s.auth = NewAuthService(d, s.tokens)
	s.farmers = NewFarmerService(d, s.audit, "farmers")
	s.events = NewEventService(d, s.audit, "biomass_events")
	s.dispatch = NewDispatchService(d, s.audit)
	s.kpi = NewKPIService(d)
	return s
}

func (s *services) auditLogs(t *testing.T) []entity.AuditLog {
	t.Helper()
	logs, err := s.store.AuditLogs().List(context.Background())
	require.NoError(t, err)
	return logs
}

var errAuditDown = errors.New("audit store down")

// auditFailStore delegates to a memory store but fails every audit append made
// inside a transaction.
type auditFailStore struct{ *memory.Store }

func (s auditFailStore) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(r repository.Repositories) error {
		return fn(auditFailRepos{r})
	})
}

type auditFailRepos struct{ repository.Repositories }

func (r auditFailRepos) AuditLogs() repository.AuditRepository {
	return failingAudit{r.Repositories.AuditLogs()}
}

type failingAudit struct{ repository.AuditRepository }

func (failingAudit) Append(context.Context, *entity.AuditLog) error { return errAuditDown }
