package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"netinv/internal/importer"
	"netinv/internal/parser"
)

// AnalyzeIPsRequest IP 分析请求
type AnalyzeIPsRequest struct {
	SheetConfigs []parser.SheetConfig `json:"sheetConfigs,omitempty"`
}

// AnalyzeIPs 扫描会话设备集中的畸形 IP
// POST /api/import/sessions/:id/analyze-ips
func (h *Handler) AnalyzeIPs(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req AnalyzeIPsRequest
	_ = c.ShouldBindJSON(&req) // 请求体可选

	devices := h.sessionDevices(session, req.SheetConfigs)
	analysis := importer.AnalyzeIPs(devices)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":       session.ID,
		"hasMalformed":    analysis.HasMalformed,
		"malformedCount":  analysis.MalformedCount,
		"validCount":      analysis.ValidCount,
		"samples":         analysis.Samples,
		"detectedPrefix":  analysis.DetectedPrefix,
		"suggestedAction": analysis.SuggestedAction,
	})
}

// CorrectIPsRequest IP 修正请求
type CorrectIPsRequest struct {
	NetworkPrefix string               `json:"networkPrefix"`
	HostDigits    int                  `json:"hostDigits"`
	SheetConfigs  []parser.SheetConfig `json:"sheetConfigs,omitempty"`
}

// correctionPreviewLimit 修正预览条数上限
const correctionPreviewLimit = 20

// CorrectIPs 按操作员确认的网段前缀修正畸形 IP
// POST /api/import/sessions/:id/correct-ips
func (h *Handler) CorrectIPs(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req CorrectIPsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NetworkPrefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 networkPrefix"})
		return
	}

	devices := h.sessionDevices(session, req.SheetConfigs)
	corrected, stats, records := importer.ApplyCorrections(devices, req.NetworkPrefix, req.HostDigits)

	session.Devices = corrected
	session.CorrectionApplied = true
	session.CorrectionPrefix = req.NetworkPrefix
	session.CorrectionHostDigits = req.HostDigits

	preview := records
	if len(preview) > correctionPreviewLimit {
		preview = preview[:correctionPreviewLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"stats":     stats,
		"preview":   preview,
	})
}
