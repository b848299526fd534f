package reader

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func TestReadXLSXFirstSheet(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	header := []interface{}{"酒名", "年份", "单价"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}
	row := []interface{}{"Lafite", "2015", "1200"}
	if err := wb.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatalf("SetSheetRow failed: %v", err)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	table, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Lafite" {
		t.Fatalf("rows=%v", table.Rows)
	}
	if table.Header[2] != "单价" {
		t.Fatalf("header=%v", table.Header)
	}
}

func TestReadCSVUTF8(t *testing.T) {
	table, err := ReadCSV([]byte("酒名,年份\nLafite,2015\nLatour,2016\n"))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[1][1] != "2016" {
		t.Fatalf("rows=%v", table.Rows)
	}
}

func TestReadCSVWithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b\n1,2\n")...)
	table, err := ReadCSV(data)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if table.Header[0] != "a" {
		t.Fatalf("BOM 未剥离: %q", table.Header[0])
	}
}

func TestDecodeTextGB18030Fallback(t *testing.T) {
	// 把中文按 GBK 编码后喂进去，应走 GB18030 兜底而不是产出乱码
	raw, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte("酒名,单价\n拉菲,980\n"))
	if err != nil {
		t.Fatalf("构造 GBK 样本失败: %v", err)
	}

	text, err := DecodeText(raw)
	if err != nil {
		t.Fatalf("DecodeText failed: %v", err)
	}
	if !bytes.Contains([]byte(text), []byte("拉菲")) {
		t.Fatalf("GB18030 解码结果不对: %q", text)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	table, err := ReadCSV([]byte("a,b,c\n1,2\n3,4,5,6\n"))
	if err != nil {
		t.Fatalf("行宽不齐的 CSV 应能读取: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows=%v", table.Rows)
	}
}
