// Package handler contains the gin HTTP handlers. Each handler registers its
// own routes on the versioned API group.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/domain/ledger"
	"github.com/towerledger/backend/internal/domain/shared"
	"github.com/towerledger/backend/internal/infrastructure/auth"
	"github.com/towerledger/backend/internal/interfaces/http/dto"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
	"github.com/towerledger/backend/internal/interfaces/http/query"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.ErrCodeForbidden, message))
}

// HandleError converts domain errors to HTTP responses. Unknown error types
// normalize to INTERNAL_ERROR.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// bindID reads the record id from a PUT or DELETE body
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A record id is required in the request body")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid record id")
		return uuid.Nil, false
	}
	return id, true
}

// requestFilters parses the listing filter state from the query string
func requestFilters(c *gin.Context) query.Filters {
	return query.ParseFilters(c.Request.URL.Query(), timeNow())
}

// towerScope resolves the tower a listing is scoped to: an explicit tower_id
// filter wins, otherwise the tower from the session claims.
func towerScope(c *gin.Context, filters query.Filters) (uuid.UUID, bool) {
	if filters.TowerID != "" {
		id, err := uuid.Parse(filters.TowerID)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	if raw := middleware.GetTowerID(c); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

// ledgerFilter converts the query filter state into the repository filter
func ledgerFilter(filters query.Filters) ledger.ListFilter {
	return ledger.ListFilter{
		Month:  filters.Month,
		Search: filters.Search,
	}
}

// sessionUserID returns the authenticated staff user id, if any
func sessionUserID(c *gin.Context) *uuid.UUID {
	if raw := middleware.GetUserID(c); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	return nil
}

// sessionClaims returns the validated token claims
func sessionClaims(c *gin.Context) *auth.Claims {
	return middleware.GetClaims(c)
}
