package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/application/export"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	"github.com/towerledger/backend/internal/infrastructure/printing"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// MonthlySettlementHandler handles the itemised monthly settlement endpoints
type MonthlySettlementHandler struct {
	BaseHandler
	service  *ledgerapp.MonthlySettlementService
	renderer printing.PDFRenderer
}

// NewMonthlySettlementHandler creates a new MonthlySettlementHandler
func NewMonthlySettlementHandler(service *ledgerapp.MonthlySettlementService, renderer printing.PDFRenderer) *MonthlySettlementHandler {
	return &MonthlySettlementHandler{service: service, renderer: renderer}
}

// RegisterRoutes registers the monthly settlement routes
func (h *MonthlySettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Flat owners may read (their own records only); mutations are staff-only
	monthly := rg.Group("/monthly-settlement")
	{
		monthly.GET("", h.List)
		monthly.POST("", middleware.RequireStaff(), h.Create)
		monthly.PUT("", middleware.RequireStaff(), h.Update)
		monthly.DELETE("", middleware.RequireStaff(), h.Delete)
		monthly.GET("/export", h.Export)
		monthly.GET("/print", h.Print)
	}
}

func (h *MonthlySettlementHandler) list(c *gin.Context) ([]ledgerapp.MonthlySettlementResponse, bool) {
	filters := requestFilters(c)

	claims := sessionClaims(c)
	if claims != nil && claims.FlatID != "" {
		flatID, err := uuid.Parse(claims.FlatID)
		if err != nil {
			h.Unauthorized(c, "Invalid session")
			return nil, false
		}
		records, err := h.service.ListByFlat(c.Request.Context(), flatID, ledgerFilter(filters))
		if err != nil {
			h.HandleError(c, err)
			return nil, false
		}
		return records, true
	}

	towerID, ok := towerScope(c, filters)
	if !ok {
		return []ledgerapp.MonthlySettlementResponse{}, true
	}

	records, err := h.service.List(c.Request.Context(), towerID, ledgerFilter(filters))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return records, true
}

// List returns the visible monthly settlements
func (h *MonthlySettlementHandler) List(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}
	h.Success(c, records)
}

// Create creates a monthly settlement for the current month
func (h *MonthlySettlementHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateMonthlySettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// Update updates a monthly settlement within its creation month. The id rides
// in the body.
func (h *MonthlySettlementHandler) Update(c *gin.Context) {
	var req ledgerapp.UpdateMonthlySettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete removes a monthly settlement. The id rides in the body.
func (h *MonthlySettlementHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Export downloads the current listing as an Excel workbook
func (h *MonthlySettlementHandler) Export(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.Excel("Monthly Settlements", export.MonthlySettlementColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="monthly-settlements.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Print downloads the current listing as a PDF
func (h *MonthlySettlementHandler) Print(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.PDF(c.Request.Context(), h.renderer, "Monthly Settlements", export.MonthlySettlementColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="monthly-settlements.pdf"`)
	c.Data(http.StatusOK, pdfContentType, data)
}
