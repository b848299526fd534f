package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wine-cx/wine-pricing-system/internal/model"
	"github.com/wine-cx/wine-pricing-system/internal/pricing"
	"github.com/wine-cx/wine-pricing-system/internal/reader"
)

func sampleRows() []pricing.Row {
	return pricing.MarkLowest(pricing.Merge([]model.Record{
		{
			NameEN: "Chateau Lafite", NameCN: "拉菲", Vintage: "2015",
			UnitPrice: "$1,200", Quantity: "6",
			WebsiteURL: "https://example.com/lafite",
			Supplier:   "华致酒行", SupplierCode: "101",
			UploadedAt: "2026-08-31 10:00:00",
		},
		{
			NameEN: "Chateau Lafite", NameCN: "拉菲", Vintage: "2015",
			UnitPrice: "¥980", Supplier: "ASC", SupplierCode: "102",
			UploadedAt: "2026-08-31 10:00:00",
		},
	}))
}

func TestXLSXRoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	if err := WriteXLSX(rows, &buf); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	table, err := reader.ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	got := ReadMerged(table)

	if len(got) != len(rows) {
		t.Fatalf("行数不一致: %d != %d", len(got), len(rows))
	}
	for i := range got {
		if got[i] != rows[i].Record {
			t.Fatalf("row %d 字段不一致:\n%+v\n%+v", i, got[i], rows[i].Record)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	if err := WriteCSV(rows, &buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	table, err := reader.ReadCSV(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	got := ReadMerged(table)

	if len(got) != len(rows) {
		t.Fatalf("行数不一致: %d != %d", len(got), len(rows))
	}
	if got[0].UnitPrice != "$1,200" || got[1].Supplier != "ASC" {
		t.Fatalf("字段不一致: %+v", got)
	}
}

func TestReadMergedIgnoresHelperColumns(t *testing.T) {
	table := &model.RawTable{
		Header: []string{model.FieldNameEN, "辅助列", model.FieldVintage},
		Rows:   [][]string{{"Lafite", "x", "2015"}},
	}
	got := ReadMerged(table)
	if got[0].NameEN != "Lafite" || got[0].Vintage != "2015" {
		t.Fatalf("%+v", got[0])
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(sampleRows(), &buf); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, `<a href="https://example.com/lafite"`) {
		t.Fatalf("网址列应渲染为链接")
	}
	// 980 是该组最低价，应有且只有一行高亮
	if strings.Count(html, `class="lowest"`) != 1 {
		t.Fatalf("应恰有一行最低价高亮")
	}
}
