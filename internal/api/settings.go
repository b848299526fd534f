package api

import (
	"github.com/gin-gonic/gin"
)

// 应用内偏好放在 sqlite 的 config 表里，和 config.toml 分工不同：
// config.toml 是启动时读一次的部署参数，这里是运行期随时改的键值。
const (
	// settingExportFormat 默认导出格式，导出请求不带 format 时生效
	settingExportFormat = "export_format"
	// settingLastMirrorTime 最近一次镜像推送成功的时间
	settingLastMirrorTime = "last_mirror_time"
)

// GetSettings 读取全部应用内偏好
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetAllConfig()
	if err != nil {
		errorResponse(c, 8001, "读取设置失败: "+err.Error())
		return
	}
	success(c, settings)
}

// UpdateSettings 逐键写入应用内偏好
// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 8002, "请求格式错误: "+err.Error())
		return
	}
	for key, value := range req {
		if err := h.store.SetConfig(key, value); err != nil {
			errorResponse(c, 8003, "保存设置失败: "+err.Error())
			return
		}
	}
	success(c, nil)
}
