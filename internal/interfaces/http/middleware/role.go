package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/domain/identity"
	"github.com/towerledger/backend/internal/interfaces/http/dto"
)

// RequireStaff blocks flat-owner tokens from the administration surfaces.
// The decision is delegated to the identity policy.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetRole(c))
		if !identity.Can(role, identity.ActionStaffArea) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "This area is restricted to staff accounts"))
			return
		}
		c.Next()
	}
}
