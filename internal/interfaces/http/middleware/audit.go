package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	auditapp "github.com/towerledger/backend/internal/application/audit"
)

// AuditMutations records every mutating request after it completes. Reads are
// not audited. Login attempts are recorded by the auth handler itself, with
// richer detail, so auth paths are skipped here.
func AuditMutations(recorder *auditapp.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "DELETE":
		default:
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
			c.Next()
			return
		}

		c.Next()

		var userID *uuid.UUID
		if raw := GetUserID(c); raw != "" {
			if parsed, err := uuid.Parse(raw); err == nil {
				userID = &parsed
			}
		}

		status := c.Writer.Status() < 400
		recorder.Record(userID, pageOf(c.Request.URL.Path), c.Request.Method, status, c.Request.URL.Path)
	}
}

// pageOf extracts the resource segment of an API path, e.g.
// "/api/v1/settlement/export" -> "settlement".
func pageOf(path string) string {
	path = strings.TrimPrefix(path, "/api/v1/")
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		path = path[:idx]
	}
	if path == "" {
		return "unknown"
	}
	return path
}
