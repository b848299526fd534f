package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// GetTemplates 读取整张模板表
// GET /api/templates
func (h *Handler) GetTemplates(c *gin.Context) {
	table, err := h.templates.Load()
	if err != nil {
		errorResponse(c, 6001, "模板表加载失败: "+err.Error())
		return
	}
	success(c, table)
}

// ReplaceTemplates 整表替换模板。
// 模板保存永远是整表写入，没有增量更新；保存成功后下一次清洗即生效。
// PUT /api/templates
func (h *Handler) ReplaceTemplates(c *gin.Context) {
	var table template.Table
	if err := c.ShouldBindJSON(&table); err != nil {
		errorResponse(c, 1001, "模板格式错误")
		return
	}

	if err := h.templates.Save(table); err != nil {
		errorResponse(c, 6002, "模板保存失败: "+err.Error())
		return
	}
	success(c, gin.H{"suppliers": len(table)})
}
