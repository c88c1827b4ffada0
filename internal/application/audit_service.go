package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

type AuditService struct {
	deps Deps
}

func NewAuditService(d Deps) *AuditService {
	return &AuditService{deps: d.withDefaults()}
}

// LogAction appends a standalone entry stamped with the server clock.
func (s *AuditService) LogAction(ctx context.Context, action, actor string) error {
	return storageErr("append audit log", s.record(ctx, s.deps.Store, action, actor))
}

func (s *AuditService) record(ctx context.Context, r repository.Repositories, action, actor string) error {
	return r.AuditLogs().Append(ctx, &entity.AuditLog{
		Action:    action,
		Actor:     actor,
		Timestamp: s.deps.Now(),
	})
}

// List returns the whole trail in storage order. Admins only.
func (s *AuditService) List(ctx context.Context, p Principal) ([]entity.AuditLog, error) {
	if err := AdminOnly.Check(p); err != nil {
		return nil, err
	}
	logs, err := s.deps.Store.AuditLogs().List(ctx)
	if err != nil {
		return nil, storageErr("list audit logs", err)
	}
	if logs == nil {
		logs = []entity.AuditLog{}
	}
	return logs, nil
}

// Export writes the trail to w as an indented JSON array and returns the
// number of entries. Admins only.
func (s *AuditService) Export(ctx context.Context, p Principal, w io.Writer) (int, error) {
	logs, err := s.List(ctx, p)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(logs); err != nil {
		return 0, fmt.Errorf("encode audit export: %w", err)
	}
	return len(logs), nil
}
