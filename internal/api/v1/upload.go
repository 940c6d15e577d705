package v1

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"netinv/internal/parser"
)

// allowedExtensions 支持的上传格式
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".txt":  true,
}

// UploadResponse 上传解析结果
type UploadResponse struct {
	SessionID   string                   `json:"sessionId"`
	FileName    string                   `json:"fileName"`
	SheetCount  int                      `json:"sheetCount"`
	Sheets      []parser.SheetDescriptor `json:"sheets"`
	AIAvailable bool                     `json:"aiAvailable"`
}

// Upload 上传并解析设备清单文件
// POST /api/import/upload
func (h *Handler) Upload(c *gin.Context) {
	pid, ok := requireProject(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	// 扩展名检查先于会话创建
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的文件格式，请使用 CSV / XLSX / XLS / TXT"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}

	sheets, err := parser.Parse(fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的文件格式，请使用 CSV / XLSX / XLS / TXT"})
			return
		}
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "文件解析失败: " + parseErr.Err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 辅助服务可用时请求列映射与类别建议，失败不阻断主流程
	aiAvailable := h.assist != nil && h.assist.Available(c.Request.Context())
	if aiAvailable {
		suggestions, err := h.assist.AnalyzeSheets(c.Request.Context(), sheets)
		if err != nil {
			log.Printf("辅助分析失败，降级为本地识别: %v", err)
		} else {
			for i := range sheets {
				if s, ok := suggestions[sheets[i].Name]; ok {
					sheets[i].Suggestion = s
				}
			}
		}
	}

	session := h.sessions.Create(pid, fileHeader.Filename, sheets)

	c.JSON(http.StatusOK, UploadResponse{
		SessionID:   session.ID,
		FileName:    session.FileName,
		SheetCount:  len(sheets),
		Sheets:      sheets,
		AIAvailable: aiAvailable,
	})
}
