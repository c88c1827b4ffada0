package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/internal/interface/middleware"
	"github.com/oksasatya/rupaykg-biomass/pkg/response"
)

// SupplyHandler serves the aggregator write paths: farmers, biomass events
// and dispatches.
type SupplyHandler struct {
	Farmers    *application.FarmerService
	Events     *application.EventService
	Dispatches *application.DispatchService
	Logger     *logrus.Logger
}

func NewSupplyHandler(f *application.FarmerService, e *application.EventService, d *application.DispatchService, logger *logrus.Logger) *SupplyHandler {
	return &SupplyHandler{Farmers: f, Events: e, Dispatches: d, Logger: logger}
}

// Numeric fields are pointers so that an explicit zero passes "required".
type createFarmerRequest struct {
	Name      string   `json:"name" binding:"required"`
	Mobile    string   `json:"mobile" binding:"required"`
	LandArea  *float64 `json:"land_area" binding:"required"`
	CropType  string   `json:"crop_type" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type createEventRequest struct {
	FarmerID        string   `json:"farmer_id" binding:"required"`
	Acreage         *float64 `json:"acreage" binding:"required"`
	EstimatedTonnes *float64 `json:"estimated_tonnes" binding:"required"`
	Latitude        *float64 `json:"latitude" binding:"required"`
	Longitude       *float64 `json:"longitude" binding:"required"`
}

type createDispatchRequest struct {
	AggregatorID string   `json:"aggregator_id" binding:"required"`
	BuyerID      string   `json:"buyer_id" binding:"required"`
	TotalTonnes  *float64 `json:"total_tonnes" binding:"required"`
}

func (h *SupplyHandler) CreateFarmer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createFarmerRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Farmers.Create(c.Request.Context(), p, application.FarmerInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		LandArea:  *req.LandArea,
		CropType:  req.CropType,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"farmer_id": id})
}

func (h *SupplyHandler) CreateEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createEventRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Events.Create(c.Request.Context(), p, application.EventInput{
		FarmerID:        req.FarmerID,
		Acreage:         *req.Acreage,
		EstimatedTonnes: *req.EstimatedTonnes,
		Latitude:        *req.Latitude,
		Longitude:       *req.Longitude,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *SupplyHandler) CreateDispatch(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createDispatchRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.Dispatches.Create(c.Request.Context(), p, application.DispatchInput{
		AggregatorID: req.AggregatorID,
		BuyerID:      req.BuyerID,
		TotalTonnes:  *req.TotalTonnes,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatch_id": id})
}

// principal reads the caller set by middleware.Auth. The body is validated
// before the service applies its role policy.
func principal(c *gin.Context) (application.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "missing bearer token", nil)
	}
	return p, ok
}
