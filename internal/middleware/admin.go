package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
)

// RequireLevel blocks requests below the given account level.
// Must run after JWTAuth.
func RequireLevel(minLevel int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserLevel(c) < minLevel {
			common.ErrorResponse(c, 403, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireEditor allows editor-level accounts and up
func RequireEditor() gin.HandlerFunc {
	return RequireLevel(domain.LevelEditor)
}

// RequireAdmin allows admin accounts only
func RequireAdmin() gin.HandlerFunc {
	return RequireLevel(domain.LevelAdmin)
}
