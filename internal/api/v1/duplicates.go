package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netinv/internal/importer"
	"netinv/internal/model"
)

// CheckDuplicates 将预览中的有效行与注册中心已有设备做重复匹配
// POST /api/import/sessions/:id/duplicates
func (h *Handler) CheckDuplicates(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if len(session.Devices) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先生成预览"})
		return
	}

	valid := validDevices(session.Devices)

	existing, err := h.registry.ListDevices(c.Request.Context(), session.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "查询注册中心失败: " + err.Error()})
		return
	}

	matches, newIndexes := importer.FindDuplicates(valid, existing)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":        session.ID,
		"totalIncoming":    len(valid),
		"duplicates":       len(matches),
		"newDevices":       len(newIndexes),
		"duplicateDetails": matches,
	})
}

// validDevices 过滤出有效行，保持原有顺序
func validDevices(devices []model.Device) []model.Device {
	out := make([]model.Device, 0, len(devices))
	for i := range devices {
		if devices[i].Validation.Valid {
			out = append(out, devices[i])
		}
	}
	return out
}
