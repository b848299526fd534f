package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/pricing"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	UploadCount    int    `json:"uploadCount"`    // 上传目录里的报价文件数
	RecordCount    int    `json:"recordCount"`    // 当前合并表行数
	SupplierCount  int    `json:"supplierCount"`  // 合并表里的酒商数
	LastCleanTime  string `json:"lastCleanTime"`  // 最近一次清洗时间
	LastMirrorTime string `json:"lastMirrorTime"` // 最近一次镜像推送时间
	MirrorEnabled  bool   `json:"mirrorEnabled"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	uploads, err := h.cleaner.ListUploads()
	if err != nil {
		uploads = nil
	}

	lastClean, err := h.store.LastCleanTime()
	if err != nil {
		lastClean = ""
	}

	// 还没推送过就是空串
	lastMirror, err := h.store.GetConfig(settingLastMirrorTime)
	if err != nil {
		lastMirror = ""
	}

	rows := h.snapshotRows()

	c.JSON(http.StatusOK, StatusResponse{
		UploadCount:    len(uploads),
		RecordCount:    len(rows),
		SupplierCount:  len(pricing.Suppliers(rows)),
		LastCleanTime:  lastClean,
		LastMirrorTime: lastMirror,
		MirrorEnabled:  h.mirror.Enabled(),
	})
}
