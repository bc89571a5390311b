package middlewares

import (
	"net/http"
	"strings"

	"dochub/internal/auth"
	"dochub/internal/policy"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

const tokenHeader = "x-access-token"

// RequireAuth gates protected routes on the x-access-token header.
// A missing or unverifiable token answers 400, not 401; clients depend
// on that status.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(tokenHeader))

		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Please sign in or register to get a token",
			})
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Please sign in or register to get a token",
			})
			return
		}

		// Stash the identity on the context
		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleIDKey, claims.RoleID)

		c.Next()
	}
}

// Optional helpers so handlers don't need to know the magic keys.

func RequesterFromContext(c *gin.Context) (policy.Requester, bool) {
	uv, ok := c.Get(ctxUserIDKey)
	if !ok {
		return policy.Requester{}, false
	}

	userID, ok := uv.(int64)
	if !ok || userID == 0 {
		return policy.Requester{}, false
	}

	rv, ok := c.Get(ctxRoleIDKey)
	if !ok {
		return policy.Requester{}, false
	}

	roleID, ok := rv.(int64)
	if !ok {
		return policy.Requester{}, false
	}

	return policy.Requester{UserID: userID, RoleID: roleID}, true
}
