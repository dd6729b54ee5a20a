package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/application/export"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	"github.com/towerledger/backend/internal/infrastructure/printing"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// EstimatedExpensesHandler handles the monthly estimate endpoints
type EstimatedExpensesHandler struct {
	BaseHandler
	service  *ledgerapp.EstimatedExpensesService
	renderer printing.PDFRenderer
}

// NewEstimatedExpensesHandler creates a new EstimatedExpensesHandler
func NewEstimatedExpensesHandler(service *ledgerapp.EstimatedExpensesService, renderer printing.PDFRenderer) *EstimatedExpensesHandler {
	return &EstimatedExpensesHandler{service: service, renderer: renderer}
}

// RegisterRoutes registers the estimate routes
func (h *EstimatedExpensesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	estimates := rg.Group("/estimated-expenses", middleware.RequireStaff())
	{
		estimates.GET("", h.List)
		estimates.POST("", h.Create)
		estimates.PUT("", h.Update)
		estimates.DELETE("", h.Delete)
		estimates.GET("/export", h.Export)
		estimates.GET("/print", h.Print)
	}
	rg.GET("/attachments", h.AttachmentURL)
}

func (h *EstimatedExpensesHandler) list(c *gin.Context) ([]ledgerapp.EstimatedExpensesResponse, bool) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		return []ledgerapp.EstimatedExpensesResponse{}, true
	}

	records, err := h.service.List(c.Request.Context(), towerID, ledgerFilter(filters))
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return records, true
}

// List returns the scoped tower's estimates
func (h *EstimatedExpensesHandler) List(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}
	h.Success(c, records)
}

// Create creates the estimate for the current month
func (h *EstimatedExpensesHandler) Create(c *gin.Context) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		h.BadRequest(c, "A tower must be selected")
		return
	}

	var req ledgerapp.CreateEstimatedExpensesRequest
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

// Update updates an estimate. The id rides in the body.
func (h *EstimatedExpensesHandler) Update(c *gin.Context) {
	var req ledgerapp.UpdateEstimatedExpensesRequest
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

// Delete removes an estimate. The id rides in the body.
func (h *EstimatedExpensesHandler) Delete(c *gin.Context) {
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
func (h *EstimatedExpensesHandler) Export(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.Excel("Estimated Expenses", export.EstimatedExpensesColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="estimated-expenses.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Print downloads the current listing as a PDF
func (h *EstimatedExpensesHandler) Print(c *gin.Context) {
	records, ok := h.list(c)
	if !ok {
		return
	}

	data, err := export.PDF(c.Request.Context(), h.renderer, "Estimated Expenses", export.EstimatedExpensesColumns(), records)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="estimated-expenses.pdf"`)
	c.Data(http.StatusOK, pdfContentType, data)
}

// AttachmentURL returns a short-lived download URL for a stored attachment
func (h *EstimatedExpensesHandler) AttachmentURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "An attachment key is required")
		return
	}

	url, expiresAt, err := h.service.AttachmentURL(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url, "expires_at": expiresAt})
}
