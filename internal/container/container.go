package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/config"
	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/internal/domain/repository"
	"github.com/oksasatya/rupaykg-biomass/internal/infrastructure/search"
	"github.com/oksasatya/rupaykg-biomass/pkg/helpers"
)

// Infra is what cmd/api connects before building the container. Only Config,
// Logger and Store are required.
type Infra struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Store     repository.Store
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}

// Container holds the constructed services shared by the router modules.
type Container struct {
	Infra

	Tokens     *helpers.TokenManager
	Auth       *application.AuthService
	Audit      *application.AuditService
	Farmers    *application.FarmerService
	Events     *application.EventService
	Dispatches *application.DispatchService
	KPI        *application.KPIService
}

// New wires the application services. Extra token options (a test clock) are
// passed through to the TokenManager.
func New(in Infra, tokenOpts ...helpers.TokenOption) *Container {
	deps := application.Deps{Store: in.Store, Logger: in.Logger}
	// Only assign when set: a typed nil would make the interface non-nil.
	if in.Publisher != nil {
		deps.Publisher = in.Publisher
	}
	if in.ES != nil {
		deps.Indexer = search.NewIndexer(in.ES)
	}

	c := &Container{Infra: in}
	c.Tokens = helpers.NewTokenManager(in.Config.JWTSecret, in.Config.AccessTTL, tokenOpts...)
	c.Auth = application.NewAuthService(deps, c.Tokens)
	c.Audit = application.NewAuditService(deps)
	c.Farmers = application.NewFarmerService(deps, c.Audit, in.Config.ESFarmersIndex)
	c.Events = application.NewEventService(deps, c.Audit, in.Config.ESEventsIndex)
	c.Dispatches = application.NewDispatchService(deps, c.Audit)
	c.KPI = application.NewKPIService(deps)
	return c
}

// Close releases every connection the container owns.
func (c *Container) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Store != nil {
		c.Store.Close()
	}
}
