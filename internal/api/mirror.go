package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/cleaner"
)

// MirrorExport 读取当前导出件推送远端，成功后把推送时间记进 config 表。
// 手动接口和定时备份走同一条路径。没有导出件时返回 os.ReadFile 的原始错误，
// 调用方用 os.IsNotExist 区分。
func (h *Handler) MirrorExport(message string) error {
	path := filepath.Join(h.exportsDir, cleaner.ExportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := h.mirror.Push(data, message); err != nil {
		return err
	}
	if err := h.store.SetConfig(settingLastMirrorTime, time.Now().Format("2006-01-02 15:04:05")); err != nil {
		log.Printf("记录镜像时间失败: %v", err)
	}
	return nil
}

// PushMirror 手动把当前导出件推送到远端镜像。
// 镜像失败只是警告：本地导出件才是数据源，接口不因镜像失败返回错误码。
// POST /api/mirror
func (h *Handler) PushMirror(c *gin.Context) {
	if !h.mirror.Enabled() {
		errorResponse(c, 7001, "镜像未配置")
		return
	}

	message := fmt.Sprintf("backup cleaned data %s", time.Now().Format("2006-01-02 15:04:05"))
	if err := h.MirrorExport(message); err != nil {
		if os.IsNotExist(err) {
			errorResponse(c, 7002, "没有可镜像的导出件，请先清洗")
			return
		}
		// 告警而不是失败
		success(c, gin.H{"mirrored": false, "warning": err.Error()})
		return
	}
	success(c, gin.H{"mirrored": true})
}
