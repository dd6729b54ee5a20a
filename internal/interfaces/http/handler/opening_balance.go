package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/application/export"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	"github.com/towerledger/backend/internal/infrastructure/printing"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// OpeningBalanceHandler handles the opening balance endpoints
type OpeningBalanceHandler struct {
	BaseHandler
	service  *ledgerapp.OpeningBalanceService
	renderer printing.PDFRenderer
}

// NewOpeningBalanceHandler creates a new OpeningBalanceHandler
func NewOpeningBalanceHandler(service *ledgerapp.OpeningBalanceService, renderer printing.PDFRenderer) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{service: service, renderer: renderer}
}

// RegisterRoutes registers the opening balance routes
func (h *OpeningBalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	balances := rg.Group("/opening-balance", middleware.RequireStaff())
	{
		balances.GET("", h.List)
		balances.POST("", h.Create)
		balances.PUT("", h.Update)
		balances.DELETE("", h.Delete)
		balances.GET("/export", h.Export)
		balances.GET("/print", h.Print)
	}
}

func (h *OpeningBalanceHandler) list(c *gin.Context) ([]ledgerapp.OpeningBalanceResponse, bool) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		return []ledgerapp.OpeningBalanceResponse{}, true
	}

	records, err := h.service.List(c.Request.Context(), towerID, ledgerFilter(filters))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return records, true
}

// List returns the scoped tower's opening balances
func (h *OpeningBalanceHandler) List(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}
	h.Success(c, records)
}

// Create creates an opening balance for the scoped tower
func (h *OpeningBalanceHandler) Create(c *gin.Context) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		h.BadRequest(c, "A tower must be selected")
		return
	}

	var req ledgerapp.CreateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.Create(c.Request.Context(), towerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// Update updates an opening balance. The id rides in the body.
func (h *OpeningBalanceHandler) Update(c *gin.Context) {
	var req ledgerapp.UpdateOpeningBalanceRequest
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

// Delete removes an opening balance. The id rides in the body.
func (h *OpeningBalanceHandler) Delete(c *gin.Context) {
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
func (h *OpeningBalanceHandler) Export(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.Excel("Opening Balances", export.OpeningBalanceColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="opening-balances.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Print downloads the current listing as a PDF
func (h *OpeningBalanceHandler) Print(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.PDF(c.Request.Context(), h.renderer, "Opening Balances", export.OpeningBalanceColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="opening-balances.pdf"`)
	c.Data(http.StatusOK, pdfContentType, data)
}
