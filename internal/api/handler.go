// Package api 暴露数据清洗与查询的 HTTP 接口。
package api

import (
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/cleaner"
	"github.com/wine-cx/wine-pricing-system/internal/config"
	"github.com/wine-cx/wine-pricing-system/internal/mirror"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
	"github.com/wine-cx/wine-pricing-system/internal/store"
	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// Handler API 处理器。
// rows 是当前会话的合并表：清洗后重建、查询时只读；合并表本身是派生数据，
// 持久化的只有导出件与模板表。
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	cleaner   *cleaner.Cleaner
	templates *template.Store
	mirror    *mirror.Client

	uploadsDir       string
	exportsDir       string
	supplierInfoPath string

	downloads *exportDownloadStore

	mu   sync.RWMutex
	rows []pricing.Row
}

// NewHandler 创建 API 处理器，并尝试恢复上一次的导出件作为查询数据
func NewHandler(cfg *config.AppConfig, st *store.Store, dataDir string) *Handler {
	uploadsDir := filepath.Join(dataDir, "uploads")
	exportsDir := filepath.Join(dataDir, "exports")
	templates := template.NewStore(filepath.Join(dataDir, "templates.json"))

	h := &Handler{
		cfg:              cfg,
		store:            st,
		cleaner:          cleaner.New(uploadsDir, exportsDir, templates),
		templates:        templates,
		mirror:           mirror.NewClient(cfg.Mirror),
		uploadsDir:       uploadsDir,
		exportsDir:       exportsDir,
		supplierInfoPath: filepath.Join(dataDir, "suppliers.json"),
		downloads:        newExportDownloadStore(),
	}

	rows, err := h.cleaner.LoadExport()
	if err != nil {
		log.Printf("恢复上次导出件失败: %v", err)
	} else if rows != nil {
		h.rows = rows
	}

	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// 上传记录管理
	router.POST("/uploads", h.UploadFiles)
	router.GET("/uploads", h.ListUploads)
	router.DELETE("/uploads/:name", h.DeleteUpload)
	router.GET("/uploads/:name/preview", h.PreviewUpload)

	// 清洗与查询
	router.POST("/clean", h.Clean)
	router.POST("/records/import", h.ImportMerged)
	router.GET("/records", h.QueryRecords)
	router.GET("/suppliers", h.ListSuppliers)
	router.GET("/vintages", h.ListVintages)

	// 模板管理（整表读 / 整表替换）
	router.GET("/templates", h.GetTemplates)
	router.PUT("/templates", h.ReplaceTemplates)

	// 导出与镜像
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
	router.POST("/mirror", h.PushMirror)

	// 清洗历史
	router.GET("/clean/logs", h.ListCleanLogs)

	// 应用内偏好
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.UpdateSettings)
}

// MirrorEnabled 镜像配置是否齐全（定时备份任务启用判定用）
func (h *Handler) MirrorEnabled() bool {
	return h.mirror.Enabled()
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

func (h *Handler) setRows(rows []pricing.Row) {
	h.mu.Lock()
	h.rows = rows
	h.mu.Unlock()
}

func (h *Handler) snapshotRows() []pricing.Row {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rows
}
