package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rupaykg-biomass/internal/interface/http"
	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
)

type StatusModule struct {
	Redis *redis.Client
}

func NewStatusModule(rdb *redis.Client) *StatusModule { return &StatusModule{Redis: rdb} }

func (m *StatusModule) Register(rg *gin.RouterGroup) {
	// probes from inside the network are never limited
	rl := middleware.RateLimit(m.Redis, middleware.AllowPrivateIP(), middleware.PerIP(120, time.Minute))
	rg.GET("/api/status", rl, handlers.Status)
}
