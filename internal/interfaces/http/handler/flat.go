package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/towerledger/backend/internal/application/property"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// FlatHandler handles flat management endpoints
type FlatHandler struct {
	BaseHandler
	flatService *propertyapp.FlatService
}

// NewFlatHandler creates a new FlatHandler
func NewFlatHandler(flatService *propertyapp.FlatService) *FlatHandler {
	return &FlatHandler{flatService: flatService}
}

// RegisterRoutes registers the flat routes
func (h *FlatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	flats := rg.Group("/flats", middleware.RequireStaff())
	{
		flats.GET("", h.List)
		flats.POST("", h.Create)
		flats.PUT("", h.Update)
		flats.DELETE("", h.Delete)
	}
}

// List returns the flats of the scoped tower. Without a tower the placeholder
// empty list is returned and no query is issued.
func (h *FlatHandler) List(c *gin.Context) {
	filters := requestFilters(c)
	towerID, ok := towerScope(c, filters)
	if !ok {
		h.Success(c, []propertyapp.FlatResponse{})
		return
	}

	if c.Query("for_select") != "" {
		options, err := h.flatService.ListForSelect(c.Request.Context(), towerID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, options)
		return
	}

	flats, err := h.flatService.ListByTower(c.Request.Context(), towerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flats)
}

// Create creates a flat
func (h *FlatHandler) Create(c *gin.Context) {
	var req propertyapp.CreateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	flat, err := h.flatService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, flat)
}

type updateFlatRequest struct {
	ID       string `json:"id" binding:"required,uuid"`
	Number   int    `json:"number" binding:"required,gt=0"`
	Floor    int    `json:"floor" binding:"gte=0"`
	Password string `json:"password"`
}

// Update updates a flat. The id rides in the body.
func (h *FlatHandler) Update(c *gin.Context) {
	var req updateFlatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid record id")
		return
	}

	flat, err := h.flatService.Update(c.Request.Context(), id, propertyapp.UpdateFlatRequest{
		Number:   req.Number,
		Floor:    req.Floor,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, flat)
}

// Delete removes a flat. The id rides in the body.
func (h *FlatHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.flatService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
