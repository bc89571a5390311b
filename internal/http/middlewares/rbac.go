package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates the role-management routes. Non-admins get 403
// with the exact message clients assert on.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := RequesterFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Please sign in or register to get a token",
			})
			return
		}
		if !requester.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You are not permitted to perform this action",
			})
			return
		}
		c.Next()
	}
}
