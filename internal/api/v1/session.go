package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"netinv/internal/importer"
	"netinv/internal/model"
	"netinv/internal/parser"
)

// loadSession 取会话并校验项目归属，失败时已写响应
func (h *Handler) loadSession(c *gin.Context) (*importer.Session, bool) {
	pid, ok := requireProject(c)
	if !ok {
		return nil, false
	}

	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, importer.ErrSessionExpired) {
			c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期，请重新上传"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	if session.ProjectID != pid {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期，请重新上传"})
		return nil, false
	}

	return session, true
}

// GetSession 查看会话当前状态
// GET /api/import/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession 丢弃会话
// DELETE /api/import/sessions/:id
// 已提交的批次保持已提交，不做回滚。
func (h *Handler) DeleteSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	h.sessions.Delete(session.ID)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// sessionDevices 取会话中的设备集。
// 预览或修正阶段已有产物时直接复用；否则按配置（缺省为全部工作表 + 自动映射）现场提取。
func (h *Handler) sessionDevices(session *importer.Session, configs []parser.SheetConfig) []model.Device {
	if len(session.Devices) > 0 {
		return session.Devices
	}

	if len(configs) == 0 {
		configs = make([]parser.SheetConfig, 0, len(session.Sheets))
		for _, sheet := range session.Sheets {
			configs = append(configs, parser.SheetConfig{
				SheetName: sheet.Name,
				Enabled:   true,
			})
		}
	}

	byName := make(map[string]*parser.SheetDescriptor, len(session.Sheets))
	for i := range session.Sheets {
		byName[session.Sheets[i].Name] = &session.Sheets[i]
	}

	var devices []model.Device
	for i := range configs {
		cfg := &configs[i]
		if !cfg.Enabled {
			continue
		}
		sheet, ok := byName[cfg.SheetName]
		if !ok {
			continue
		}
		mapping := parser.EffectiveMapping(sheet, cfg)
		devices = append(devices, importer.NormalizeSheet(sheet, mapping)...)
	}
	return devices
}
