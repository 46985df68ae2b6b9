package middleware

import (
	"net/http"
	"strings"

	"guesthouse-backend/models"
	"guesthouse-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireAuth rejects requests without a valid token and stores the
// caller's identity on the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims.UserID == 0 {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is
// present but never rejects the request. Listing endpoints use it to
// scope results without closing public access.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := utils.ParseToken(token); err == nil && claims.UserID != 0 {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireAdmin gates staff-only routes. Use after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != models.RoleAdmin {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor reads the identity set by the auth middleware. ok is false
// on unauthenticated requests (possible under OptionalAuth).
func CurrentActor(c *gin.Context) (userID uint, role string, ok bool) {
	id, exists := c.Get(ContextUserID)
	if !exists {
		return 0, "", false
	}
	uid, valid := id.(uint)
	if !valid || uid == 0 {
		return 0, "", false
	}
	r, _ := c.Get(ContextRole)
	roleStr, _ := r.(string)
	return uid, roleStr, true
}
