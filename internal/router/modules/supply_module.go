package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/rupaykg-biomass/internal/interface/http"
)

// SupplyModule mounts the aggregator write routes under /api.
type SupplyModule struct {
	Handler *handlers.SupplyHandler
	Guard   Guard
}

func NewSupplyModule(h *handlers.SupplyHandler, g Guard) *SupplyModule {
	return &SupplyModule{Handler: h, Guard: g}
}

func (m *SupplyModule) Register(rg *gin.RouterGroup) {
	api := m.Guard.Group(rg, "/api")
	api.POST("/farmer/create", m.Handler.CreateFarmer)
	api.POST("/biomass/event", m.Handler.CreateEvent)
	api.POST("/dispatch", m.Handler.CreateDispatch)
}
