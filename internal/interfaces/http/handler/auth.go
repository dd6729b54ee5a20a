package handler

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/towerledger/backend/internal/application/audit"
	identityapp "github.com/towerledger/backend/internal/application/identity"
)

// AuthHandler handles the login endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	recorder    *auditapp.Recorder
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, recorder *auditapp.Recorder) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		recorder:    recorder,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/towers", h.Towers)
	}
}

// loginRequest is the combined login body. Staff sign in with email, tower
// and password; flat owners set as_flat and send number, floor and password.
type loginRequest struct {
	AsFlat   bool   `json:"as_flat"`
	Email    string `json:"email"`
	TowerID  string `json:"tower_id"`
	Number   int    `json:"number"`
	Floor    int    `json:"floor"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff user or a flat owner. Every attempt is audit
// logged, failures with a nil user id.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.AsFlat {
		resp, err := h.authService.LoginFlat(c.Request.Context(), identityapp.FlatLoginRequest{
			Number:   req.Number,
			Floor:    req.Floor,
			Password: req.Password,
		})
		if err != nil {
			h.recorder.Record(nil, "auth", "LOGIN", false, "flat login failed")
			h.HandleError(c, err)
			return
		}
		h.recorder.Record(nil, "auth", "LOGIN", true, "flat login")
		h.Success(c, resp)
		return
	}

	resp, err := h.authService.LoginStaff(c.Request.Context(), identityapp.StaffLoginRequest{
		Email:    req.Email,
		TowerID:  req.TowerID,
		Password: req.Password,
	})
	if err != nil {
		h.recorder.Record(nil, "auth", "LOGIN", false, "staff login failed for "+req.Email)
		h.HandleError(c, err)
		return
	}
	h.recorder.Record(resp.UserID, "auth", "LOGIN", true, "staff login")
	h.Success(c, resp)
}

// Towers lists the towers a staff email can sign into. The login page calls
// it before authentication; unknown emails yield an empty list.
func (h *AuthHandler) Towers(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		h.BadRequest(c, "An email address is required")
		return
	}

	options, err := h.authService.TowersForEmail(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}
