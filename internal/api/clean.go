package api

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Clean 对上传目录做一轮完整清洗合并，保存导出件并记录历史
// POST /api/clean
func (h *Handler) Clean(c *gin.Context) {
	rows, report, err := h.cleaner.CleanAll()
	if err != nil {
		// 模板表加载失败才会走到这里：功能级失败，单文件问题都在报告里
		errorResponse(c, 3001, "清洗失败: "+err.Error())
		return
	}

	exportPath, err := h.cleaner.SaveExport(rows)
	if err != nil {
		errorResponse(c, 3002, "保存导出件失败: "+err.Error())
		return
	}
	report.ExportPath = exportPath

	h.setRows(rows)

	if _, err := h.store.RecordClean(report); err != nil {
		// 历史记录失败不影响清洗结果
		log.Printf("记录清洗历史失败: %v", err)
	}

	success(c, report)
}

// ListCleanLogs 清洗历史
// GET /api/clean/logs?limit=20
func (h *Handler) ListCleanLogs(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.store.ListCleanLogs(limit)
	if err != nil {
		errorResponse(c, 3003, err.Error())
		return
	}
	success(c, logs)
}
