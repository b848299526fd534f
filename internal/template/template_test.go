package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

func TestExtractCode(t *testing.T) {
	cases := map[string]string{
		"报价单(101).xlsx":  "101",
		"Supplier205.csv": "205",
		"无编码报价.xlsx":      "",
		"12只有两位.xlsx":     "",
		"1234取前三位.xlsx":   "123",
	}
	for in, want := range cases {
		if got := ExtractCode(in); got != want {
			t.Errorf("ExtractCode(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestParseSupplier(t *testing.T) {
	if got := ParseSupplier("华致酒行(101).xlsx"); got != "华致酒行" {
		t.Fatalf("ParseSupplier=%q", got)
	}
	if got := ParseSupplier("ASC Fine Wines.CSV"); got != "ASC Fine Wines" {
		t.Fatalf("ParseSupplier=%q", got)
	}
}

func TestMatchByCode(t *testing.T) {
	table := Table{
		"Supplier101(ABC)": {model.FieldNameEN: "A"},
		"Supplier102":      {model.FieldNameEN: "B"},
	}

	key, tpl := Match(table, "报价101.xlsx")
	if key != "Supplier101(ABC)" || tpl == nil {
		t.Fatalf("Match=%q, %v", key, tpl)
	}

	// 未命中不是错误，返回空键
	key, tpl = Match(table, "报价999.xlsx")
	if key != "" || tpl != nil {
		t.Fatalf("编码 999 不应命中: %q, %v", key, tpl)
	}
}

func TestMatchDeterministicOrder(t *testing.T) {
	// 编码出现在多个键里时，按字典序首个命中
	table := Table{
		"B-101": {},
		"A-101": {},
	}
	key, _ := Match(table, "x101.xlsx")
	if key != "A-101" {
		t.Fatalf("应命中字典序靠前的键: %q", key)
	}
}

func TestMatchBySupplierName(t *testing.T) {
	table := Table{"华致酒行": {model.FieldUnitPrice: "C"}}
	key, tpl := Match(table, "华致酒行.xlsx")
	if key != "华致酒行" || tpl == nil {
		t.Fatalf("按酒商名匹配失败: %q", key)
	}
}

func TestStoreLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	s := NewStore(path)

	// 不存在时返回空表
	table, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("初始应为空表: %v", table)
	}

	table = Table{
		"Supplier101": {
			model.FieldNameEN:    "A",
			model.FieldVintage:   "B",
			model.FieldUnitPrice: "C,D",
		},
	}
	if err := s.Save(table); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got["Supplier101"][model.FieldUnitPrice] != "C,D" {
		t.Fatalf("round trip: %v", got)
	}
}

func TestStoreLoadToleratesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"S101":{"酒名英文":"A"}}`)...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("带 BOM 的模板文件应能加载: %v", err)
	}
	if got["S101"][model.FieldNameEN] != "A" {
		t.Fatalf("BOM load: %v", got)
	}
}
