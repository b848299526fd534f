package colspec

import (
	"strings"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

// Resolve 按解析后的规格对原始表取出一列字符串，长度恒等于数据行数。
// 任何越界/非法规格都逐行降级为占位值，绝不让单个坏规格中断整个文件的提取。
func Resolve(spec Spec, table *model.RawTable) []string {
	n := len(table.Rows)
	out := make([]string, n)
	if n == 0 {
		return out
	}
	width := table.Width()

	switch spec.Kind {
	case KindPositional:
		resolvePositional(spec, table, width, out)
	case KindNamed:
		resolveNamed(spec, table, out)
	}
	return out
}

// ResolveString 解析并取值的快捷入口。空白规格返回空字符串列。
func ResolveString(spec string, table *model.RawTable) []string {
	if strings.TrimSpace(spec) == "" {
		return make([]string, len(table.Rows))
	}
	return Resolve(Parse(spec), table)
}

func resolvePositional(spec Spec, table *model.RawTable, width int, out []string) {
	switch {
	case spec.List != nil:
		// 逗号列表：每项独立降级，占位与正常列按位置用空格拼接
		for i, row := range table.Rows {
			parts := make([]string, 0, len(spec.List))
			for _, idx := range spec.List {
				if idx < 0 || idx >= width {
					parts = append(parts, Placeholder)
				} else {
					parts = append(parts, cell(row, idx))
				}
			}
			out[i] = strings.Join(parts, " ")
		}

	case spec.IsRange:
		// 区间：下界坏掉说明模板写错，整列占位；上界缺失/非法收缩到最后一列
		lo, hi := spec.RangeLo, spec.RangeHi
		if lo < 0 || lo >= width {
			fill(out, Placeholder)
			return
		}
		if hi < 0 || hi > width-1 {
			hi = width - 1
		}
		for i, row := range table.Rows {
			parts := make([]string, 0, hi-lo+1)
			for j := lo; j <= hi; j++ {
				parts = append(parts, cell(row, j))
			}
			out[i] = strings.Join(parts, " ")
		}

	default:
		if spec.Single < 0 || spec.Single >= width {
			fill(out, Placeholder)
			return
		}
		for i, row := range table.Rows {
			out[i] = cell(row, spec.Single)
		}
	}
}

func resolveNamed(spec Spec, table *model.RawTable, out []string) {
	// 表头名寻址：缺失的表头当作空列，各部分按行直接拼接
	cols := make([]int, 0, len(spec.Names))
	for _, name := range spec.Names {
		cols = append(cols, findHeader(table.Header, name))
	}
	for i, row := range table.Rows {
		var b strings.Builder
		for _, idx := range cols {
			if idx >= 0 {
				b.WriteString(cell(row, idx))
			}
		}
		out[i] = b.String()
	}
}

func findHeader(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func fill(out []string, v string) {
	for i := range out {
		out[i] = v
	}
}
