// Package cleaner 串起一次完整的清洗合并：
// 扫描上传目录 → 按文件匹配模板 → 读取并提取 → 合并 → 写出导出件。
package cleaner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wine-cx/wine-pricing-system/internal/exporter"
	"github.com/wine-cx/wine-pricing-system/internal/extract"
	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
	"github.com/wine-cx/wine-pricing-system/internal/reader"
	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// ExportFileName 默认导出件文件名
const ExportFileName = "cleaned_data.xlsx"

// Cleaner 清洗器
type Cleaner struct {
	uploadsDir string
	exportsDir string
	templates  *template.Store
}

// New 创建清洗器
func New(uploadsDir, exportsDir string, templates *template.Store) *Cleaner {
	return &Cleaner{
		uploadsDir: uploadsDir,
		exportsDir: exportsDir,
		templates:  templates,
	}
}

// ListUploads 列出上传目录里的报价文件（按文件名排序，保证合并顺序可复现）
func (c *Cleaner) ListUploads() ([]string, error) {
	entries, err := os.ReadDir(c.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("读取上传目录失败: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".xls", ".csv", ".txt":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CleanAll 对上传目录做一轮完整清洗合并。
// 模板表加载失败才算整体失败；单个文件未命中模板或读取失败只记录在报告里，
// 不影响其余文件。合并表是纯派生数据，每次清洗从源文件整体重建。
func (c *Cleaner) CleanAll() ([]pricing.Row, *model.CleanReport, error) {
	table, err := c.templates.Load()
	if err != nil {
		return nil, nil, err
	}

	names, err := c.ListUploads()
	if err != nil {
		return nil, nil, err
	}

	report := &model.CleanReport{TotalFiles: len(names)}
	tables := make([][]model.Record, 0, len(names))

	for _, name := range names {
		result, records := c.cleanOne(table, name)
		report.Files = append(report.Files, result)
		if result.Error != "" || !result.Matched {
			report.Skipped++
			continue
		}
		report.Matched++
		report.TotalRows += result.Rows
		tables = append(tables, records)
	}

	rows := pricing.MarkLowest(pricing.Merge(tables...))
	return rows, report, nil
}

// cleanOne 处理单个文件，任何失败都收敛为 FileResult，不往外抛
func (c *Cleaner) cleanOne(table template.Table, name string) (model.FileResult, []model.Record) {
	result := model.FileResult{FileName: name}

	key, tpl := template.Match(table, name)
	if tpl == nil {
		return result, nil
	}
	result.TemplateKey = key
	result.Matched = true

	path := filepath.Join(c.uploadsDir, name)
	raw, err := reader.ReadFile(path)
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}

	prov := extract.Provenance{
		Supplier:     extract.SupplierLabel(tpl, name),
		SupplierCode: template.ExtractCode(name),
		UploadedAt:   fileUploadedAt(path),
	}
	records := extract.Extract(raw, tpl, prov)

	result.Supplier = prov.Supplier
	result.Rows = len(records)
	return result, records
}

func fileUploadedAt(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().Format("2006-01-02 15:04:05")
}

// SaveExport 把合并表写到导出目录，返回导出件路径
func (c *Cleaner) SaveExport(rows []pricing.Row) (string, error) {
	if err := os.MkdirAll(c.exportsDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(c.exportsDir, ExportFileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("写导出件失败: %w", err)
	}
	defer f.Close()

	if err := exporter.WriteXLSX(rows, f); err != nil {
		return "", fmt.Errorf("写导出件失败: %w", err)
	}
	return path, nil
}

// LoadExport 载入上一次的导出件（会话启动时恢复查询数据用）。
// 不存在返回 nil 不报错。
func (c *Cleaner) LoadExport() ([]pricing.Row, error) {
	path := filepath.Join(c.exportsDir, ExportFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	raw, err := reader.ReadXLSX(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("读取导出件失败: %w", err)
	}
	records := exporter.ReadMerged(raw)
	return pricing.MarkLowest(pricing.Merge(records)), nil
}

// Preview 提取单个文件的前 limit 行（上传记录管理页的预览）
func (c *Cleaner) Preview(name string, limit int) ([]model.Record, error) {
	table, err := c.templates.Load()
	if err != nil {
		return nil, err
	}

	_, tpl := template.Match(table, name)
	if tpl == nil {
		return nil, fmt.Errorf("文件 %s 未命中任何模板", name)
	}

	path := filepath.Join(c.uploadsDir, name)
	raw, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prov := extract.Provenance{
		Supplier:     extract.SupplierLabel(tpl, name),
		SupplierCode: template.ExtractCode(name),
		UploadedAt:   fileUploadedAt(path),
	}
	records := extract.Extract(raw, tpl, prov)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
