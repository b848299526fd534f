package api

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// UploadInfo 上传记录列表项
type UploadInfo struct {
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	UploadedAt  string `json:"uploadedAt"`
	Matched     bool   `json:"matched"`     // 是否命中模板
	TemplateKey string `json:"templateKey"` // 命中的模板键
}

// UploadFiles 上传报价文件（支持多选）
// POST /api/uploads
func (h *Handler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		errorResponse(c, 1001, "无效的表单数据")
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		errorResponse(c, 1002, "未找到上传文件")
		return
	}

	saved := make([]string, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f.Filename)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xls", ".csv", ".txt":
		default:
			errorResponse(c, 1003, "不支持的文件类型: "+name)
			return
		}
		if err := c.SaveUploadedFile(f, filepath.Join(h.uploadsDir, name)); err != nil {
			errorResponse(c, 5001, "保存文件失败: "+name)
			return
		}
		saved = append(saved, name)
	}

	success(c, gin.H{"saved": saved})
}

// ListUploads 列出上传记录及模板匹配状态
// GET /api/uploads
func (h *Handler) ListUploads(c *gin.Context) {
	names, err := h.cleaner.ListUploads()
	if err != nil {
		errorResponse(c, 5002, err.Error())
		return
	}

	table, err := h.templates.Load()
	if err != nil {
		errorResponse(c, 5003, "模板表加载失败: "+err.Error())
		return
	}

	out := make([]UploadInfo, 0, len(names))
	for _, name := range names {
		info := UploadInfo{FileName: name}
		if fi, err := os.Stat(filepath.Join(h.uploadsDir, name)); err == nil {
			info.Size = fi.Size()
			info.UploadedAt = fi.ModTime().Format("2006-01-02 15:04:05")
		}
		if key, tpl := template.Match(table, name); tpl != nil {
			info.Matched = true
			info.TemplateKey = key
		}
		out = append(out, info)
	}

	success(c, out)
}

// DeleteUpload 删除一个上传文件
// DELETE /api/uploads/:name
func (h *Handler) DeleteUpload(c *gin.Context) {
	name := filepath.Base(c.Param("name"))
	if name == "" || name == "." {
		errorResponse(c, 1004, "文件名无效")
		return
	}

	if err := os.Remove(filepath.Join(h.uploadsDir, name)); err != nil {
		if os.IsNotExist(err) {
			errorResponse(c, 1005, "文件不存在: "+name)
			return
		}
		errorResponse(c, 5004, err.Error())
		return
	}
	success(c, gin.H{"deleted": name})
}

// PreviewUpload 预览单个文件的提取结果
// GET /api/uploads/:name/preview?limit=5
func (h *Handler) PreviewUpload(c *gin.Context) {
	name := filepath.Base(c.Param("name"))

	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	records, err := h.cleaner.Preview(name, limit)
	if err != nil {
		errorResponse(c, 2001, err.Error())
		return
	}
	success(c, records)
}
