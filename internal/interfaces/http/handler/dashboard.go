package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// DashboardHandler handles the landing page aggregates
type DashboardHandler struct {
	BaseHandler
	service *ledgerapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *ledgerapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/counts", middleware.RequireStaff(), h.Counts)
}

// Counts returns the entity counters and the month-over-month settlement
// comparison for the scoped tower
func (h *DashboardHandler) Counts(c *gin.Context) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		h.BadRequest(c, "A tower must be selected")
		return
	}

	counts, err := h.service.Counts(c.Request.Context(), towerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}
