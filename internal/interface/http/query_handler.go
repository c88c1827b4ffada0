package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/application"
)

type QueryHandler struct {
	KPI    *application.KPIService
	Audit  *application.AuditService
	Logger *logrus.Logger
}

func NewQueryHandler(kpi *application.KPIService, audit *application.AuditService, logger *logrus.Logger) *QueryHandler {
	return &QueryHandler{KPI: kpi, Audit: audit, Logger: logger}
}

func (h *QueryHandler) Dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	kpi, err := h.KPI.Dashboard(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, kpi)
}

func (h *QueryHandler) AuditLogs(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	logs, err := h.Audit.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Status is the unauthenticated liveness probe.
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "RupayKg Biomass Exchange Running"})
}
