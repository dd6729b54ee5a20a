package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/towerledger/backend/internal/application/property"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// TowerHandler handles tower management endpoints
type TowerHandler struct {
	BaseHandler
	towerService *propertyapp.TowerService
}

// NewTowerHandler creates a new TowerHandler
func NewTowerHandler(towerService *propertyapp.TowerService) *TowerHandler {
	return &TowerHandler{towerService: towerService}
}

// RegisterRoutes registers the tower routes
func (h *TowerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	towers := rg.Group("/towers", middleware.RequireStaff())
	{
		towers.GET("", h.List)
		towers.POST("", h.Create)
		towers.PUT("", h.Update)
		towers.DELETE("", h.Delete)
	}
}

// List returns all towers. With for_select it returns compact selector
// entries, optionally restricted to a staff user's towers by user_email.
func (h *TowerHandler) List(c *gin.Context) {
	if c.Query("for_select") != "" {
		options, err := h.towerService.ListForSelect(c.Request.Context(), c.Query("user_email"))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, options)
		return
	}

	towers, err := h.towerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, towers)
}

// Create creates a tower
func (h *TowerHandler) Create(c *gin.Context) {
	var req propertyapp.CreateTowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tower, err := h.towerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tower)
}

type updateTowerRequest struct {
	ID      string `json:"id" binding:"required,uuid"`
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
	Floors  int    `json:"floors" binding:"required,gt=0"`
}

// Update updates a tower. The id rides in the body.
func (h *TowerHandler) Update(c *gin.Context) {
	var req updateTowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid record id")
		return
	}

	tower, err := h.towerService.Update(c.Request.Context(), id, propertyapp.UpdateTowerRequest{
		Name:    req.Name,
		Address: req.Address,
		Floors:  req.Floors,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tower)
}

// Delete removes a tower. The id rides in the body.
func (h *TowerHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.towerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
