// Package exporter 把合并表写成 xlsx / csv / HTML，并支持从导出件重新载入。
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
)

// SheetName 导出工作表名
const SheetName = "报价合并"

const uploadedAtHeader = "上传时间"

// exportHeaders 导出列：规范字段加上传时间
func exportHeaders() []string {
	return append(append([]string{}, model.CanonicalFields...), uploadedAtHeader)
}

func exportRow(r *model.Record) []string {
	out := make([]string, 0, len(model.CanonicalFields)+1)
	for _, field := range model.CanonicalFields {
		out = append(out, r.Get(field))
	}
	return append(out, r.UploadedAt)
}

// WriteXLSX 写出合并表。网址列写成可点击的超链接。
func WriteXLSX(rows []pricing.Row, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, SheetName); err != nil {
		return err
	}

	headers := exportHeaders()
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &cells); err != nil {
		return err
	}

	urlCol := -1
	for i, h := range headers {
		if h == model.FieldWebsiteURL {
			urlCol = i
			break
		}
	}

	for i := range rows {
		values := exportRow(&rows[i].Record)
		rowCells := make([]interface{}, len(values))
		for j, v := range values {
			rowCells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, axis, &rowCells); err != nil {
			return err
		}

		if url := rows[i].WebsiteURL; urlCol >= 0 && isLink(url) {
			cell, err := excelize.CoordinatesToCellName(urlCol+1, i+2)
			if err != nil {
				return err
			}
			// 超链接失败不致命，单元格里仍有文本
			_ = f.SetCellHyperLink(SheetName, cell, url, "External")
		}
	}

	return f.Write(w)
}

// WriteCSV 写出合并表为 UTF-8 CSV
func WriteCSV(rows []pricing.Row, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders()); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(exportRow(&rows[i].Record)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMerged 从自家导出件（或查询页上传的清洗结果）还原合并表。
// 按表头名定位列，缺哪列哪列为空；多出的辅助列忽略。
func ReadMerged(table *model.RawTable) []model.Record {
	colIndex := make(map[string]int)
	for i, h := range table.Header {
		colIndex[strings.TrimSpace(h)] = i
	}

	records := make([]model.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		var r model.Record
		for _, field := range model.CanonicalFields {
			if idx, ok := colIndex[field]; ok && idx < len(row) {
				r.Set(field, row[idx])
			}
		}
		if idx, ok := colIndex[uploadedAtHeader]; ok && idx < len(row) {
			r.UploadedAt = row[idx]
		}
		records = append(records, r)
	}
	return records
}

func isLink(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// htmlEscape 只处理表格输出需要的字符
func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// WriteHTML 写出带可点击链接的 HTML 视图，最低价行加高亮样式
func WriteHTML(rows []pricing.Row, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="zh"><head><meta charset="utf-8"><title>红酒报价合并表</title>`)
	b.WriteString(`<style>table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:4px 8px}tr.lowest{background:#e8f5e9}</style>`)
	b.WriteString(`</head><body><table><thead><tr>`)
	for _, h := range exportHeaders() {
		b.WriteString("<th>" + htmlEscape(h) + "</th>")
	}
	b.WriteString("<th>最低价</th></tr></thead><tbody>")

	for i := range rows {
		if rows[i].Lowest {
			b.WriteString(`<tr class="lowest">`)
		} else {
			b.WriteString("<tr>")
		}
		for _, field := range model.CanonicalFields {
			v := rows[i].Get(field)
			if field == model.FieldWebsiteURL && isLink(v) {
				b.WriteString(fmt.Sprintf(`<td><a href="%s" target="_blank">%s</a></td>`, htmlEscape(v), htmlEscape(v)))
				continue
			}
			b.WriteString("<td>" + htmlEscape(v) + "</td>")
		}
		b.WriteString("<td>" + htmlEscape(rows[i].UploadedAt) + "</td>")
		if rows[i].Lowest {
			b.WriteString("<td>✓</td>")
		} else {
			b.WriteString("<td></td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")

	_, err := io.WriteString(w, b.String())
	return err
}
