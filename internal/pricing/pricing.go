// Package pricing 合并各文件的规范记录表，做单价数值化、最低价标记与查询过滤。
package pricing

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

// Row 合并表中的一行：规范记录加上派生的价格数值与最低价标记。
// 派生字段每次查询重算，不落盘。
type Row struct {
	model.Record
	Price   float64 `json:"price"`   // 数值化的单价，PriceOK 为 false 时无意义
	PriceOK bool    `json:"priceOk"` // 单价是否解析成功
	Lowest  bool    `json:"lowest"`  // 是否为同酒同年份的最低价行
}

// Merge 按处理顺序把各表首尾相接。调用方负责按文件名排序保证可复现。
func Merge(tables ...[]model.Record) []Row {
	total := 0
	for _, t := range tables {
		total += len(t)
	}
	rows := make([]Row, 0, total)
	for _, t := range tables {
		for _, rec := range t {
			price, ok := ParsePrice(rec.UnitPrice)
			rows = append(rows, Row{Record: rec, Price: price, PriceOK: ok})
		}
	}
	return rows
}

// ParsePrice 把单价原文数值化：去掉所有非数字非小数点的字符再解析。
// 解析失败返回 ok=false，该行保留原文、不参与排序和最低价计算。
func ParsePrice(text string) (float64, bool) {
	var b strings.Builder
	for _, c := range text {
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteRune(c)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GroupKey 最低价比较的分组键：酒名英文与年份的直接拼接。
// 刻意不做大小写/空白归一化：近似重名不会合并，这是已知限制而不是待修的 bug。
func GroupKey(r *model.Record) string {
	return r.NameEN + r.Vintage
}

// MarkLowest 逐组标记最低价行。
// 并列最低时只标首个（first-minimum 策略：组内遍历顺序中第一次出现最小值的行）。
// 年份为空或单价解析失败的行保留在结果里，只是不参与最低价计算。
func MarkLowest(rows []Row) []Row {
	lowestIdx := make(map[string]int)
	for i := range rows {
		rows[i].Lowest = false
		if !rows[i].PriceOK || rows[i].Vintage == "" {
			continue
		}
		key := GroupKey(&rows[i].Record)
		j, ok := lowestIdx[key]
		if !ok || rows[i].Price < rows[j].Price {
			lowestIdx[key] = i
		}
	}
	for _, i := range lowestIdx {
		rows[i].Lowest = true
	}
	return rows
}

// Query 按条件过滤合并表。结果是新切片，原表不动。
func Query(rows []Row, opts model.QueryOptions) []Row {
	out := make([]Row, 0, len(rows))
	kw := strings.ToLower(strings.TrimSpace(opts.Keyword))

	for _, r := range rows {
		if kw != "" && !matchKeyword(&r.Record, kw) {
			continue
		}
		if opts.Supplier != "" && r.Supplier != opts.Supplier {
			continue
		}
		if opts.Vintage != "" && r.Vintage != opts.Vintage {
			continue
		}
		if opts.OnlyLowest && !r.Lowest {
			continue
		}
		out = append(out, r)
	}

	if opts.SortByPrice {
		sort.SliceStable(out, func(i, j int) bool {
			// 解析失败的排最后
			if out[i].PriceOK != out[j].PriceOK {
				return out[i].PriceOK
			}
			if !out[i].PriceOK {
				return false
			}
			return out[i].Price < out[j].Price
		})
	}
	return out
}

func matchKeyword(r *model.Record, kw string) bool {
	return strings.Contains(strings.ToLower(r.NameEN), kw) ||
		strings.Contains(strings.ToLower(r.NameCN), kw) ||
		strings.Contains(r.Vintage, kw)
}

// Suppliers 合并表里出现过的酒商名，去重后按字典序
func Suppliers(rows []Row) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		if r.Supplier == "" {
			continue
		}
		if _, ok := seen[r.Supplier]; ok {
			continue
		}
		seen[r.Supplier] = struct{}{}
		out = append(out, r.Supplier)
	}
	sort.Strings(out)
	return out
}

// Vintages 合并表里出现过的年份，去重后按字典序
func Vintages(rows []Row) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		if r.Vintage == "" {
			continue
		}
		if _, ok := seen[r.Vintage]; ok {
			continue
		}
		seen[r.Vintage] = struct{}{}
		out = append(out, r.Vintage)
	}
	sort.Strings(out)
	return out
}
