package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
)

// Guard is the middleware chain shared by every authenticated route: token
// check, then a soft per-IP limit and a per-subject limit.
type Guard []gin.HandlerFunc

func NewGuard(v middleware.TokenVerifier, rdb *redis.Client) Guard {
	return Guard{
		middleware.Auth(v),
		middleware.RateLimit(rdb, nil,
			middleware.PerIP(300, time.Minute),
			middleware.PerSubject(120, time.Minute),
		),
	}
}

// Group returns a sub-group of rg with the guard applied.
func (g Guard) Group(rg *gin.RouterGroup, path string) *gin.RouterGroup {
	grp := rg.Group(path)
	grp.Use(g...)
	return grp
}
