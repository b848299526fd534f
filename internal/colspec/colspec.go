// Package colspec 实现列规格字符串的解析与解析后对原始表格的取值。
//
// 列规格有四种写法：单个字母码（A、B、…、AA）、横线区间（A-C）、逗号列表
// （A,C,E）、或直接写表头名（多个表头用 + 连接）。字母码按电子表格习惯
// A=1..Z=26 的 26 进制转为从 0 开始的列下标。
package colspec

import (
	"strings"
)

// Placeholder 列越界/规格非法时填充的占位值（逐行填充，不中断提取）
const Placeholder = "列越界"

// Kind 寻址方式
type Kind int

const (
	// KindPositional 字母码寻址（单列/区间/列表）
	KindPositional Kind = iota
	// KindNamed 表头名寻址（多个部分用 + 连接）
	KindNamed
)

// Spec 解析后的列规格。解析只做一次，之后每次取值不再重新嗅探寻址方式。
type Spec struct {
	Kind Kind

	// 字母码寻址
	Single  int   // 单列下标；-1 表示非法字母码
	IsRange bool  // A-C 形式
	RangeLo int   // 区间下界；-1 表示非法（整列降级为占位）
	RangeHi int   // 区间上界；-1 表示缺失/非法（收缩到表格最后一列）
	List    []int // 逗号列表，逐项下标，-1 表示该项非法

	// 表头名寻址
	Names []string
}

// LetterToIndex 把字母码转为从 0 开始的列下标。
// 含任何非 A-Z 字符时整个码非法，返回 -1（调用方降级为占位，而不是报错）。
func LetterToIndex(s string) int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return -1
	}
	idx := 0
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return -1
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx - 1
}

// isLetterToken 判断一个片段是否为纯字母码
func isLetterToken(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, c := range strings.ToUpper(s) {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Parse 解析列规格字符串。
// 判定规则：逗号和横线一起切出的每个片段都是纯字母码时按字母寻址，
// 否则按表头名寻址。因此 A-C,E 仍走字母寻址：逗号列表逐项取下标，
// A-C 这一项不是单个字母码，降级为占位，E 正常取值。
func Parse(spec string) Spec {
	s := strings.TrimSpace(spec)

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if allLetterTokens(splitTokens(s)) {
			out := Spec{Kind: KindPositional, Single: -1, List: make([]int, 0, len(parts))}
			for _, p := range parts {
				out.List = append(out.List, LetterToIndex(p))
			}
			return out
		}
		return namedSpec(s)
	}

	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		if allLetterTokens(parts[:1]) && (strings.TrimSpace(parts[1]) == "" || isLetterToken(parts[1])) {
			return Spec{
				Kind:    KindPositional,
				Single:  -1,
				IsRange: true,
				RangeLo: LetterToIndex(parts[0]),
				RangeHi: LetterToIndex(parts[1]),
			}
		}
		return namedSpec(s)
	}

	if isLetterToken(s) {
		return Spec{Kind: KindPositional, Single: LetterToIndex(s)}
	}
	return namedSpec(s)
}

// splitTokens 按逗号和横线切出判定寻址方式用的片段（空片段丢弃）
func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '-' })
}

func allLetterTokens(parts []string) bool {
	for _, p := range parts {
		if !isLetterToken(p) {
			return false
		}
	}
	return true
}

func namedSpec(s string) Spec {
	parts := strings.Split(s, "+")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return Spec{Kind: KindNamed, Single: -1, Names: names}
}
