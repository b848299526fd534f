// Package extract 把一张原始表按模板映射成规范记录表。
package extract

import (
	"regexp"

	"github.com/wine-cx/wine-pricing-system/internal/colspec"
	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/template"
)

// reVintage 年份只认 1900-2099 的 4 位年，取第一段命中
var reVintage = regexp.MustCompile(`(19\d{2}|20\d{2})`)

// Provenance 一批记录的来源标注，整表每行相同
type Provenance struct {
	Supplier     string // 酒商名（供应商筛选的唯一分组键）
	SupplierCode string // 3 位编码，可为空
	UploadedAt   string // 上传时间
}

// 模板中不按列规格解析的键：酒商在模板里存的是字面名，不是列地址
var literalKeys = map[string]bool{
	model.FieldSupplier:     true,
	model.FieldSupplierCode: true,
	"display_name":          true,
}

// Extract 对原始表逐字段应用模板的列规格，产出规范记录表。
// 缺失/空白的规格产出空列；年份列做 4 位年提取，提不出的行年份置空。
// 单字段的寻址错误只影响该字段（占位值），不会让整个文件失败。
func Extract(raw *model.RawTable, tpl template.Template, prov Provenance) []model.Record {
	n := len(raw.Rows)
	records := make([]model.Record, n)

	for _, field := range model.CanonicalFields {
		if literalKeys[field] {
			continue
		}
		col := colspec.ResolveString(tpl[field], raw)
		if field == model.FieldVintage {
			for i := range col {
				col[i] = ExtractVintage(col[i])
			}
		}
		for i := range records {
			records[i].Set(field, col[i])
		}
	}

	for i := range records {
		records[i].Supplier = prov.Supplier
		records[i].SupplierCode = prov.SupplierCode
		records[i].UploadedAt = prov.UploadedAt
	}
	return records
}

// ExtractVintage 从任意文本取第一段 4 位年份，没有则返回空串
func ExtractVintage(text string) string {
	return reVintage.FindString(text)
}

// SupplierLabel 决定一批记录的酒商名。
// 优先级：模板的酒商字面值 → 模板 display_name → 文件名解析。
// 整个部署只用这一种口径，保证供应商筛选分组稳定。
func SupplierLabel(tpl template.Template, fileName string) string {
	if v := tpl[model.FieldSupplier]; v != "" {
		return v
	}
	if v := tpl["display_name"]; v != "" {
		return v
	}
	return template.ParseSupplier(fileName)
}
