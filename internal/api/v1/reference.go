package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"netinv/internal/model"
)

// Reference 转发注册中心的参考数据，供导入配置界面选择类别和 VLAN
// GET /api/import/reference
func (h *Handler) Reference(c *gin.Context) {
	projectID, ok := requireProject(c)
	if !ok {
		return
	}

	categories, err := h.registry.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "查询注册中心失败: " + err.Error()})
		return
	}

	// VLAN 查不到不阻断，类别是必须的
	vlans, err := h.registry.ListVLANs(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("查询 VLAN 失败: %v", err)
		vlans = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"vlans":      vlans,
	})
}

// categorySlugs 取注册中心类别的 slug 列表，失败时退回约定集合
func (h *Handler) categorySlugs(c *gin.Context) []string {
	categories, err := h.registry.ListCategories(c.Request.Context())
	if err != nil || len(categories) == 0 {
		return model.KnownCategorySlugs
	}
	slugs := make([]string, 0, len(categories))
	for _, cat := range categories {
		slugs = append(slugs, cat.Slug)
	}
	return slugs
}
