package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rupaykg-biomass/internal/container"
	handlers "github.com/oksasatya/rupaykg-biomass/internal/interface/http"
	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
	"github.com/oksasatya/rupaykg-biomass/internal/router/modules"
	"github.com/oksasatya/rupaykg-biomass/pkg/validation"
)

// InitModules registers every feature module with the registry.
func InitModules(r *Registry, c *container.Container) {
	rdb := c.Redis
	if !c.Config.RateLimitEnabled {
		rdb = nil
	}
	guard := modules.NewGuard(c.Auth, rdb)

	r.Add(modules.NewStatusModule(rdb))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Logger), guard, rdb))
	r.Add(modules.NewSupplyModule(handlers.NewSupplyHandler(c.Farmers, c.Events, c.Dispatches, c.Logger), guard))
	r.Add(modules.NewQueryModule(handlers.NewQueryHandler(c.KPI, c.Audit, c.Logger), guard))
}

// NewEngine builds the gin engine with global middleware and all routes.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		e.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		e.Use(middleware.AccessLog(c.Logger))
	}

	reg := NewRegistry(e)
	InitModules(reg, c)
	reg.RegisterAll()
	return e
}
