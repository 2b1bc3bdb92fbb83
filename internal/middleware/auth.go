package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"university-hr/internal/models"
	"university-hr/internal/services"
)

// Context keys set by JWTAuth.
const (
	ContextEmployeeID = "employeeID"
	ContextRole       = "role"
)

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// JWTAuth verifies the bearer token and stores the caller's employee id and role in the context.
func JWTAuth(tokens *services.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, services.ErrTokenExpired) {
				msg = "Token has expired"
			}
			abort(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(ContextEmployeeID, claims.EmployeeID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets the request through only when the token's role is one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := Actor(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Access denied for role "+string(role))
	}
}

// Actor returns the authenticated employee id and role set by JWTAuth.
func Actor(c *gin.Context) (int64, models.Role, bool) {
	idVal, okID := c.Get(ContextEmployeeID)
	roleVal, okRole := c.Get(ContextRole)
	if !okID || !okRole {
		return 0, "", false
	}
	id, okID := idVal.(int64)
	role, okRole := roleVal.(models.Role)
	return id, role, okID && okRole
}
