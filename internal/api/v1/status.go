package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStatus 服务状态探针
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"service":        "netinv",
		"time":           time.Now().Format(time.RFC3339),
		"aiAvailable":    h.assist.Available(c.Request.Context()),
		"activeSessions": h.sessions.Len(),
	})
}
