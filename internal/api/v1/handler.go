package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"netinv/internal/assist"
	"netinv/internal/importer"
	"netinv/internal/model"
	"netinv/internal/parser"
	"netinv/internal/store"
)

// RegistryClient 注册中心能力（按处理器所需收敛的接口）
type RegistryClient interface {
	BulkUpsert(ctx context.Context, projectID string, devices []model.Device) (model.BatchOutcome, error)
	ListDevices(ctx context.Context, projectID string) ([]model.RegistryDevice, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListVLANs(ctx context.Context, projectID string) ([]model.VLAN, error)
}

// AssistClient 辅助分类服务能力
type AssistClient interface {
	Available(ctx context.Context) bool
	AnalyzeSheets(ctx context.Context, sheets []parser.SheetDescriptor) (map[string]*parser.AssistSuggestion, error)
	CategorizeDevices(ctx context.Context, devices []model.Device, categories []string) ([]assist.Categorization, error)
}

// Handler 导入管线 API 处理器
type Handler struct {
	store    *store.Store
	sessions *importer.SessionStore
	registry RegistryClient
	assist   AssistClient
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, sessions *importer.SessionStore, reg RegistryClient, as AssistClient) *Handler {
	return &Handler{
		store:    st,
		sessions: sessions,
		registry: reg,
		assist:   as,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 导入管线
	imp := router.Group("/import")
	{
		imp.POST("/upload", h.Upload)
		imp.GET("/template", h.DownloadTemplate)
		imp.GET("/reference", h.Reference)
		imp.GET("/logs", h.ListImportLogs)

		sessions := imp.Group("/sessions")
		{
			sessions.GET("/:id", h.GetSession)
			sessions.DELETE("/:id", h.DeleteSession)
			sessions.POST("/:id/analyze-ips", h.AnalyzeIPs)
			sessions.POST("/:id/correct-ips", h.CorrectIPs)
			sessions.POST("/:id/preview", h.Preview)
			sessions.POST("/:id/duplicates", h.CheckDuplicates)
			sessions.POST("/:id/confirm", h.ConfirmImport)
		}
	}
}

// projectID 从请求头或查询参数取项目标识，必须是合法 UUID
func projectID(c *gin.Context) (string, bool) {
	pid := c.GetHeader("X-Project-ID")
	if pid == "" {
		pid = c.Query("project_id")
	}
	if pid == "" {
		return "", false
	}
	if _, err := uuid.Parse(pid); err != nil {
		return "", false
	}
	return pid, true
}

// requireProject 取项目标识，缺失或非法时直接响应 400
func requireProject(c *gin.Context) (string, bool) {
	pid, ok := projectID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少或非法的项目标识 (X-Project-ID)"})
		return "", false
	}
	return pid, true
}
