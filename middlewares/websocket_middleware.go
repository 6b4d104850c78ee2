package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/utils"
)

// WebSocketAuthMiddleware reads the token from the query string since
// browsers cannot set headers on a websocket upgrade.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set(ContextRole, claims.Role)
		c.Set(ContextStaffID, claims.StaffID)
		c.Set(ContextBranchID, claims.BranchID)
		c.Next()
	}
}
