package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/towerledger/backend/internal/application/identity"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// UserHandler handles staff account management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users", middleware.RequireStaff())
	{
		users.GET("", h.List)
		users.GET("/me", h.Me)
		users.POST("", h.Create)
		users.PUT("", h.Update)
		users.PUT("/switch-tower", h.SwitchTower)
		users.DELETE("", h.Delete)
	}
}

// List returns all staff accounts
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// Me returns the signed-in staff account
func (h *UserHandler) Me(c *gin.Context) {
	userID := sessionUserID(c)
	if userID == nil {
		h.Unauthorized(c, "A staff session is required")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), *userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Create creates a staff account
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

type updateUserRequest struct {
	ID       string `json:"id" binding:"required,uuid"`
	UserName string `json:"user_name" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Image    string `json:"image"`
	TowerID  string `json:"tower_id"`
}

// Update updates a staff account. The id rides in the body.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid record id")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, identityapp.UpdateUserRequest{
		UserName: req.UserName,
		Phone:    req.Phone,
		Password: req.Password,
		Image:    req.Image,
		TowerID:  req.TowerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

type switchTowerRequest struct {
	TowerID string `json:"tower_id" binding:"required,uuid"`
}

// SwitchTower moves the signed-in staff user to another working tower
func (h *UserHandler) SwitchTower(c *gin.Context) {
	userID := sessionUserID(c)
	if userID == nil {
		h.Unauthorized(c, "A staff session is required")
		return
	}

	var req switchTowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	towerID, err := uuid.Parse(req.TowerID)
	if err != nil {
		h.BadRequest(c, "Invalid tower id")
		return
	}

	user, err := h.userService.SwitchTower(c.Request.Context(), *userID, towerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete removes a staff account. The id rides in the body.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
