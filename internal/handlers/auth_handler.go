package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"university-hr/internal/models"
)

// Login returns the login handler for one dashboard role.
func (h *AppHandler) Login(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		res, err := h.auth.Login(c.Request.Context(), role, req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Login successful",
			"userType":  res.Role,
			"user":      res.User,
			"token":     res.Token,
			"expiresAt": res.ExpiresAt,
		})
	}
}
