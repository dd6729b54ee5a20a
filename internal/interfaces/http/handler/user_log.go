package handler

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/towerledger/backend/internal/application/audit"
	"github.com/towerledger/backend/internal/domain/audit"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
)

// UserLogHandler handles the activity log endpoints. Entries are appended
// solely by the audit recorder, so only GET and DELETE are exposed.
type UserLogHandler struct {
	BaseHandler
	recorder *auditapp.Recorder
}

// NewUserLogHandler creates a new UserLogHandler
func NewUserLogHandler(recorder *auditapp.Recorder) *UserLogHandler {
	return &UserLogHandler{recorder: recorder}
}

// RegisterRoutes registers the user log routes
func (h *UserLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/user-log", middleware.RequireStaff())
	{
		logs.GET("", h.List)
		logs.DELETE("", h.Delete)
	}
}

// List returns the activity log matching the filter
func (h *UserLogHandler) List(c *gin.Context) {
	filters := requestFilters(c)

	entries, err := h.recorder.List(c.Request.Context(), audit.ListFilter{
		Month:  filters.Month,
		Search: filters.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Delete removes an activity log entry. The id rides in the body.
func (h *UserLogHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.recorder.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
