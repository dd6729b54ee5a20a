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

// SettlementHandler handles the settlement endpoints. Flat-owner tokens only
// see their own flat's records.
type SettlementHandler struct {
	BaseHandler
	service  *ledgerapp.SettlementService
	renderer printing.PDFRenderer
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(service *ledgerapp.SettlementService, renderer printing.PDFRenderer) *SettlementHandler {
	return &SettlementHandler{service: service, renderer: renderer}
}

// RegisterRoutes registers the settlement routes
func (h *SettlementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Flat owners may read (their own records only); mutations are staff-only
	settlements := rg.Group("/settlement")
	{
		settlements.GET("", h.List)
		settlements.POST("", middleware.RequireStaff(), h.Create)
		settlements.PUT("", middleware.RequireStaff(), h.Update)
		settlements.DELETE("", middleware.RequireStaff(), h.Delete)
		settlements.GET("/export", h.Export)
		settlements.GET("/print", h.Print)
	}
}

// list resolves the visible records for the caller: a flat owner's own
// history, or the scoped tower's listing for staff.
func (h *SettlementHandler) list(c *gin.Context) ([]ledgerapp.SettlementResponse, bool) {
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
		return []ledgerapp.SettlementResponse{}, true
	}

	records, err := h.service.List(c.Request.Context(), towerID, ledgerFilter(filters))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return records, true
}

// List returns the visible settlements
func (h *SettlementHandler) List(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}
	h.Success(c, records)
}

// Create creates a settlement for the current month
func (h *SettlementHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateSettlementRequest
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

// Update updates a settlement within its creation month. The id rides in the
// body.
func (h *SettlementHandler) Update(c *gin.Context) {
	var req ledgerapp.UpdateSettlementRequest
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

// Delete removes a settlement. The id rides in the body.
func (h *SettlementHandler) Delete(c *gin.Context) {
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
func (h *SettlementHandler) Export(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.Excel("Settlements", export.SettlementColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="settlements.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Print downloads the current listing as a PDF
func (h *SettlementHandler) Print(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.PDF(c.Request.Context(), h.renderer, "Settlements", export.SettlementColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="settlements.pdf"`)
	c.Data(http.StatusOK, pdfContentType, data)
}
