package api

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wine-cx/wine-pricing-system/internal/exporter"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
)

// ExportRequest 导出请求
type ExportRequest struct {
	Format string `json:"format"` // xlsx / csv / html
}

// Export 把当前合并表写成指定格式，返回一次性下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Format = ""
	}
	if req.Format == "" {
		// 请求不带格式时用设置里的默认格式
		if v, err := h.store.GetConfig(settingExportFormat); err == nil && v != "" {
			req.Format = v
		} else {
			req.Format = "xlsx"
		}
	}

	rows := h.snapshotRows()
	if rows == nil {
		errorResponse(c, 4001, "暂无数据，请先清洗")
		return
	}

	var write func([]pricing.Row, *os.File) error
	switch req.Format {
	case "xlsx":
		write = func(rows []pricing.Row, f *os.File) error { return exporter.WriteXLSX(rows, f) }
	case "csv":
		write = func(rows []pricing.Row, f *os.File) error { return exporter.WriteCSV(rows, f) }
	case "html":
		write = func(rows []pricing.Row, f *os.File) error { return exporter.WriteHTML(rows, f) }
	default:
		errorResponse(c, 1001, "不支持的导出格式: "+req.Format)
		return
	}

	path := filepath.Join(h.exportsDir, fmt.Sprintf("export_%s.%s", uuid.New().String(), req.Format))
	f, err := os.Create(path)
	if err != nil {
		errorResponse(c, 5001, "创建导出文件失败: "+err.Error())
		return
	}
	if err := write(rows, f); err != nil {
		f.Close()
		os.Remove(path)
		errorResponse(c, 5002, "写导出文件失败: "+err.Error())
		return
	}
	f.Close()

	token := h.downloads.put(path, req.Format, 10*time.Minute)
	success(c, gin.H{"token": token, "rows": len(rows)})
}

// DownloadExport 按令牌下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, 4004, "下载链接已失效")
		return
	}

	contentType := map[string]string{
		"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"csv":  "text/csv; charset=utf-8",
		"html": "text/html; charset=utf-8",
	}[item.format]

	fileName := "cleaned_data." + item.format
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", contentType)
	c.File(item.filePath)
}
