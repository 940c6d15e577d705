package v1

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"netinv/internal/importer"
	"netinv/internal/model"
)

// DuplicateDecision 操作员对单个重复行的决定
type DuplicateDecision struct {
	Index  int                  `json:"index"`
	Action model.DecisionAction `json:"action"`
}

// ConfirmRequest 确认导入请求
type ConfirmRequest struct {
	Decisions []DuplicateDecision  `json:"decisions,omitempty"`
	ApplyAll  model.DecisionAction `json:"applyAll,omitempty"` // 对所有重复行统一应用的动作
}

// ConfirmImport 确认导入，以 SSE 流式返回批量提交进度
// POST /api/import/sessions/:id/confirm
func (h *Handler) ConfirmImport(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if session.State != importer.StatePreview {
		c.JSON(http.StatusConflict, gin.H{"error": "会话尚未生成预览或已在导入中"})
		return
	}

	var req ConfirmRequest
	_ = c.ShouldBindJSON(&req)

	valid := validDevices(session.Devices)
	if len(valid) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有可导入的有效设备"})
		return
	}

	// 重新匹配重复并套用操作员决定
	existing, err := h.registry.ListDevices(c.Request.Context(), session.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "查询注册中心失败: " + err.Error()})
		return
	}
	matches, _ := importer.FindDuplicates(valid, existing)
	applyDecisions(matches, req)

	final := importer.ResolveDecisions(valid, matches)

	if err := session.Transition(importer.StateImporting); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	validCount, invalidCount := importer.CountValid(session.Devices)
	runID, err := h.store.CreateImportRun(session.ID, session.ProjectID, session.FileName, len(session.Devices), validCount, invalidCount)
	if err != nil {
		log.Printf("创建导入审计记录失败: %v", err)
	}

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok2 := c.Writer.(http.Flusher)
	if !ok2 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	orchestrator := importer.NewOrchestrator(h.registry)
	progressChan, summaryChan := orchestrator.Run(c.Request.Context(), session.ProjectID, final)

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}

	// 汇总以编排器的返回值为准，进度事件丢了也不影响
	summary := <-summaryChan

	// 部分失败也是终态，状态机无条件收尾
	session.Summary = &summary
	if err := session.Transition(importer.StateComplete); err != nil {
		log.Printf("会话收尾失败: %v", err)
	}

	if runID > 0 {
		status := "completed"
		if summary.Cancelled {
			status = "cancelled"
		}
		errMsg := strings.Join(summary.Errors, "; ")
		if err := h.store.CompleteImportRun(runID, summary.Success, summary.Failed, status, errMsg); err != nil {
			log.Printf("回填导入审计记录失败: %v", err)
		}
	}
}

// applyDecisions 套用操作员的重复处理决定，未指定时保持默认 update
func applyDecisions(matches []model.DuplicateMatch, req ConfirmRequest) {
	if req.ApplyAll != "" {
		for i := range matches {
			matches[i].Action = req.ApplyAll
		}
	}

	byIndex := make(map[int]model.DecisionAction, len(req.Decisions))
	for _, d := range req.Decisions {
		if d.Action != "" {
			byIndex[d.Index] = d.Action
		}
	}
	for i := range matches {
		if action, ok := byIndex[matches[i].Index]; ok {
			matches[i].Action = action
		}
	}
}
