package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListImportLogs 查询历史导入记录
// GET /api/import/logs?limit=50
func (h *Handler) ListImportLogs(c *gin.Context) {
	projectID, ok := requireProject(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	runs, err := h.store.ListImportRuns(projectID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询导入记录失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(runs),
		"runs":  runs,
	})
}
