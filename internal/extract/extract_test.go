package extract

import (
	"reflect"
	"testing"

	"github.com/wine-cx/wine-pricing-system/internal/colspec"
	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/template"
)

func sampleTable() *model.RawTable {
	return &model.RawTable{
		Header: []string{"No", "Name", "Year", "Price", "Qty"},
		Rows: [][]string{
			{"1", "Chateau Lafite", "Bordeaux 2015 Grand Cru", "$1,200", "6"},
			{"2", "Chateau Latour", "no year here", "¥980", "12"},
		},
	}
}

func sampleTemplate() template.Template {
	return template.Template{
		model.FieldNameEN:    "B",
		model.FieldVintage:   "C",
		model.FieldUnitPrice: "D",
		model.FieldQuantity:  "E",
	}
}

func TestExtractVintage(t *testing.T) {
	cases := map[string]string{
		"Bordeaux 2015 Grand Cru": "2015",
		"no year here":            "",
		"1899 太早":                 "",   // 1900 之前不算年份
		"2100 太晚":                 "",   // 2099 之后不算年份
		"1985/1986":               "1985", // 取第一段
	}
	for in, want := range cases {
		if got := ExtractVintage(in); got != want {
			t.Errorf("ExtractVintage(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestExtractBasic(t *testing.T) {
	prov := Provenance{Supplier: "华致酒行", SupplierCode: "101", UploadedAt: "2026-08-31 10:00:00"}
	records := Extract(sampleTable(), sampleTemplate(), prov)

	if len(records) != 2 {
		t.Fatalf("len=%d", len(records))
	}
	r := records[0]
	if r.NameEN != "Chateau Lafite" {
		t.Fatalf("NameEN=%q", r.NameEN)
	}
	if r.Vintage != "2015" {
		t.Fatalf("Vintage=%q", r.Vintage)
	}
	// 单价保持原文，数值化推迟到查询阶段
	if r.UnitPrice != "$1,200" {
		t.Fatalf("UnitPrice=%q", r.UnitPrice)
	}
	if r.Supplier != "华致酒行" || r.SupplierCode != "101" {
		t.Fatalf("provenance: %+v", r)
	}
	// 没有年份的行年份置空而不是保留原文
	if records[1].Vintage != "" {
		t.Fatalf("Vintage=%q", records[1].Vintage)
	}
}

func TestExtractMissingSpecYieldsEmptyColumn(t *testing.T) {
	records := Extract(sampleTable(), sampleTemplate(), Provenance{})
	for i, r := range records {
		if r.NameCN != "" || r.WebsiteURL != "" {
			t.Fatalf("row %d: 未配置的字段应为空: %+v", i, r)
		}
	}
}

func TestExtractBadSpecDegradesToPlaceholder(t *testing.T) {
	tpl := sampleTemplate()
	tpl[model.FieldNameCN] = "ZZ" // 远超列宽
	records := Extract(sampleTable(), tpl, Provenance{})
	if records[0].NameCN != colspec.Placeholder {
		t.Fatalf("NameCN=%q, want placeholder", records[0].NameCN)
	}
	// 其他字段不受影响
	if records[0].NameEN != "Chateau Lafite" {
		t.Fatalf("NameEN=%q", records[0].NameEN)
	}
}

func TestExtractIdempotent(t *testing.T) {
	prov := Provenance{Supplier: "S", UploadedAt: "2026-08-31 10:00:00"}
	a := Extract(sampleTable(), sampleTemplate(), prov)
	b := Extract(sampleTable(), sampleTemplate(), prov)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("同输入两次提取结果不一致")
	}
}

func TestSupplierLabelPrecedence(t *testing.T) {
	tpl := template.Template{model.FieldSupplier: "华致酒行"}
	if got := SupplierLabel(tpl, "x(101).xlsx"); got != "华致酒行" {
		t.Fatalf("got %q", got)
	}

	tpl = template.Template{"display_name": "ASC"}
	if got := SupplierLabel(tpl, "x(101).xlsx"); got != "ASC" {
		t.Fatalf("got %q", got)
	}

	if got := SupplierLabel(template.Template{}, "某酒商(101).xlsx"); got != "某酒商" {
		t.Fatalf("got %q", got)
	}
}
