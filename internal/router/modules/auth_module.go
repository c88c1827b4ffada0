package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rupaykg-biomass/internal/interface/http"
	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
)

// AuthModule serves the public credential routes and the token echo.
// Public: POST /register, POST /login
// Protected: GET /api/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, g Guard, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Guard: g, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, nil, middleware.PerRoute(5, time.Minute))
	loginLimiter := middleware.RateLimit(m.Redis, nil, middleware.PerRoute(10, time.Minute))

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	m.Guard.Group(rg, "/api").GET("/me", m.Handler.Me)
}
