package handlers

import (
	"net/http"

	"skytrip/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest snapshot from the background health monitor.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
