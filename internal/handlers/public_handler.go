package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Welcome answers the root path.
func (h *AppHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the backend server!"})
}

// TestDB pings the database.
func (h *AppHandler) TestDB(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondMessage(c, "Database connected successfully!")
}

// Health reports pool statistics and database reachability.
func (h *AppHandler) Health(c *gin.Context) {
	stats := h.db.Stats()
	pool := gin.H{
		"openConnections": stats.OpenConnections,
		"inUse":           stats.InUse,
		"idle":            stats.Idle,
		"waitCount":       stats.WaitCount,
		"waitDuration":    stats.WaitDuration.String(),
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error(), "pool": pool})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pool": pool})
}

// Counts returns the number of employees and departments.
func (h *AppHandler) Counts(c *gin.Context) {
	counts, err := h.reports.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "employees": counts.Employees, "departments": counts.Departments})
}
