package api

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wine-cx/wine-pricing-system/internal/exporter"
	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
	"github.com/wine-cx/wine-pricing-system/internal/reader"
	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// QueryRecords 查询合并表
// GET /api/records?keyword=&supplier=&vintage=&sortByPrice=&onlyLowest=
func (h *Handler) QueryRecords(c *gin.Context) {
	var opts model.QueryOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}

	rows := h.snapshotRows()
	if rows == nil {
		errorResponse(c, 4001, "暂无数据，请先清洗或导入清洗结果")
		return
	}

	success(c, pricing.Query(rows, opts))
}

// ImportMerged 上传一份清洗结果（xlsx/csv）作为当前查询数据，并保存为导出件
// POST /api/records/import
func (h *Handler) ImportMerged(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, 1002, "未找到上传文件")
		return
	}

	f, err := file.Open()
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}

	var raw *model.RawTable
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".xlsx", ".xls":
		raw, err = reader.ReadXLSX(bytes.NewReader(data))
	case ".csv":
		raw, err = reader.ReadCSV(data)
	default:
		errorResponse(c, 1003, "只支持 xlsx/csv 清洗结果")
		return
	}
	if err != nil {
		errorResponse(c, 4002, "读取清洗结果失败: "+err.Error())
		return
	}

	rows := pricing.MarkLowest(pricing.Merge(exporter.ReadMerged(raw)))
	h.setRows(rows)

	// 同步落盘，作为下次会话的恢复点
	if _, err := h.cleaner.SaveExport(rows); err != nil {
		errorResponse(c, 4003, "导入成功但保存导出件失败: "+err.Error())
		return
	}

	success(c, gin.H{"rows": len(rows)})
}

// ListSuppliers 合并表中出现的酒商（含 suppliers.json 的附加信息）
// GET /api/suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	names := pricing.Suppliers(h.snapshotRows())

	info, err := template.LoadSupplierInfo(h.supplierInfoPath)
	if err != nil {
		// 附加信息表坏了降级为纯名单，不挡查询
		info = template.SupplierInfo{}
	}

	type supplier struct {
		Name string            `json:"name"`
		Info map[string]string `json:"info,omitempty"`
	}
	out := make([]supplier, 0, len(names))
	for _, n := range names {
		out = append(out, supplier{Name: n, Info: info[n]})
	}
	success(c, out)
}

// ListVintages 合并表中出现的年份
// GET /api/vintages
func (h *Handler) ListVintages(c *gin.Context) {
	success(c, pricing.Vintages(h.snapshotRows()))
}
