package handlers

import (
	"net/http"

	"appointly/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the latest backend health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"message":  "Calendar booking API is running",
		"services": utils.GetHealthStatus(),
	})
}
