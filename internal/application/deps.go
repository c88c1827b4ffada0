package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/domain/entity"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
)

// Publisher sends a message to downstream consumers. *helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// Indexer mirrors a document into a search index.
type Indexer interface {
	Index(ctx context.Context, index, id string, doc any) error
}

// Deps is what every domain service is constructed with. Store is required;
// the rest fall back to defaults.
type Deps struct {
	Store     repository.Store
	Logger    *logrus.Logger
	Publisher Publisher
	Indexer   Indexer
	Now       func() time.Time
	NewID     func() string
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// createAudited writes a record and its audit entry in one unit of work.
func createAudited(ctx context.Context, d Deps, audit *AuditService, op, action, actor string, write func(repository.Repositories) error) error {
	err := d.Store.WithinTx(ctx, func(r repository.Repositories) error {
		if err := write(r); err != nil {
			return err
		}
		return audit.record(ctx, r, action, actor)
	})
	return storageErr(op, err)
}

// afterCommit runs the best-effort side effects of a successful create. Failures
// are logged and never reach the caller.
func afterCommit(ctx context.Context, d Deps, index, id, notifyType, actor string, doc any) {
	log := d.Logger.WithFields(logrus.Fields{"id": id, "type": notifyType})

	if d.Indexer != nil && index != "" {
		if err := d.Indexer.Index(ctx, index, id, doc); err != nil {
			log.WithError(err).Warn("search index failed")
		}
	}
	if d.Publisher != nil {
		payload, err := json.Marshal(doc)
		if err != nil {
			log.WithError(err).Warn("encode notification payload failed")
			return
		}
		n := entity.Notification{Type: notifyType, ID: id, Actor: actor, OccurredAt: d.Now(), Payload: payload}
		if err := d.Publisher.PublishJSON(ctx, notifyType, n); err != nil {
			log.WithError(err).Warn("publish notification failed")
		}
	}
}
