package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/rupaykg-biomass/internal/interface/http"
)

type QueryModule struct {
	Handler *handlers.QueryHandler
	Guard   Guard
}

func NewQueryModule(h *handlers.QueryHandler, g Guard) *QueryModule {
	return &QueryModule{Handler: h, Guard: g}
}

func (m *QueryModule) Register(rg *gin.RouterGroup) {
	api := m.Guard.Group(rg, "/api")
	api.GET("/dashboard/kpi", m.Handler.Dashboard)
	api.GET("/admin/audit", m.Handler.AuditLogs)
}
