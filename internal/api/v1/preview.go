package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netinv/internal/assist"
	"netinv/internal/importer"
	"netinv/internal/model"
	"netinv/internal/parser"
)

// PreviewRequest 预览请求
type PreviewRequest struct {
	SheetConfigs []parser.SheetConfig `json:"sheetConfigs"`
	Categories   []string             `json:"categories,omitempty"`
}

// PreviewResponse 预览结果
type PreviewResponse struct {
	SessionID        string         `json:"sessionId"`
	TotalDevices     int            `json:"totalDevices"`
	ValidDevices     int            `json:"validDevices"`
	InvalidDevices   int            `json:"invalidDevices"`
	Devices          []model.Device `json:"devices"`
	AICategorization bool           `json:"aiCategorization"`
}

// Preview 生成导入预览：重算有效映射，规范化、校验并分类所有启用工作表的行
// POST /api/import/sessions/:id/preview
func (h *Handler) Preview(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}
	if len(req.SheetConfigs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 sheetConfigs"})
		return
	}

	// 保存操作员配置
	for _, cfg := range req.SheetConfigs {
		session.Configs[cfg.SheetName] = cfg
	}

	// 工作表级类别指定
	sheetOverrides := make(map[string]string)
	for _, cfg := range req.SheetConfigs {
		if cfg.Enabled && cfg.Category != "" {
			sheetOverrides[cfg.SheetName] = cfg.Category
		}
	}

	// 总是按最新配置重新提取，修正过的 IP 按会话里存的参数重放，
	// 修正之后再调整映射或启停工作表仍然生效
	session.Devices = nil
	devices := h.sessionDevices(session, req.SheetConfigs)
	if session.CorrectionApplied {
		devices, _, _ = importer.ApplyCorrections(devices, session.CorrectionPrefix, session.CorrectionHostDigits)
	}

	// 辅助分类：只对没有工作表级指定的有效行请求建议
	assisted := h.assistCategories(c, devices, sheetOverrides, req.Categories)

	devices = importer.Categorize(devices, sheetOverrides, assisted)
	devices = importer.FillManufacturer(devices)

	session.Devices = devices
	if session.State == importer.StateConfigure || session.State == importer.StatePreview {
		if err := session.Transition(importer.StatePreview); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
	}

	valid, invalid := importer.CountValid(devices)

	c.JSON(http.StatusOK, PreviewResponse{
		SessionID:        session.ID,
		TotalDevices:     len(devices),
		ValidDevices:     valid,
		InvalidDevices:   invalid,
		Devices:          devices,
		AICategorization: len(assisted) > 0,
	})
}

// assistCategories 请求辅助分类建议，失败时降级为空
func (h *Handler) assistCategories(c *gin.Context, devices []model.Device, sheetOverrides map[string]string, categories []string) map[int]importer.AssistCategory {
	if h.assist == nil {
		return nil
	}

	var needing []model.Device
	var needingIndex []int
	for i := range devices {
		if _, overridden := sheetOverrides[devices[i].SourceSheet]; overridden {
			continue
		}
		if !devices[i].Validation.Valid {
			continue
		}
		needing = append(needing, devices[i])
		needingIndex = append(needingIndex, i)
	}
	if len(needing) == 0 {
		return nil
	}

	if !h.assist.Available(c.Request.Context()) {
		return nil
	}

	// 类别候选集缺省取注册中心的参考数据
	if len(categories) == 0 {
		categories = h.categorySlugs(c)
	}

	cats, err := h.assist.CategorizeDevices(c.Request.Context(), needing, categories)
	if err != nil {
		log.Printf("辅助分类失败，回退为型号规则: %v", err)
		return nil
	}

	// 建议按 needing 子集下标返回，换算回完整设备列表的下标
	base := assist.ToAssistCategories(cats)
	out := make(map[int]importer.AssistCategory, len(base))
	for idx, category := range base {
		if idx < 0 || idx >= len(needingIndex) {
			continue
		}
		out[needingIndex[idx]] = category
	}

	// 辅助服务顺带识别出的厂商也一并采纳
	applyAssistManufacturers(devices, needingIndex, cats)

	return out
}

func applyAssistManufacturers(devices []model.Device, needingIndex []int, cats []assist.Categorization) {
	for _, cat := range cats {
		if cat.Manufacturer == "" {
			continue
		}
		if cat.OriginalIndex < 0 || cat.OriginalIndex >= len(needingIndex) {
			continue
		}
		d := &devices[needingIndex[cat.OriginalIndex]]
		if d.Manufacturer == "" {
			d.Manufacturer = cat.Manufacturer
		}
	}
}
