// Package reader 读取上传的报价文件（.xlsx / .csv），统一转成 RawTable。
// 编码不可信：逐个候选编码尝试解码，全部失败才算该文件读取失败。
package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/wine-cx/wine-pricing-system/internal/model"
)

// ReadFile 按扩展名读取文件为原始表
func ReadFile(path string) (*model.RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ReadXLSX(bytes.NewReader(data))
	case ".csv", ".txt":
		return ReadCSV(data)
	default:
		return nil, fmt.Errorf("不支持的文件类型: %s", filepath.Base(path))
	}
}

// ReadXLSX 读取工作簿第一个工作表
func ReadXLSX(r io.Reader) (*model.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("工作簿没有工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return tableFromRows(rows), nil
}

// ReadCSV 读取分隔文本。先做编码探测与解码，再按 CSV 解析（允许行宽不齐）。
func ReadCSV(data []byte) (*model.RawTable, error) {
	text, err := DecodeText(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *model.RawTable {
	if len(rows) == 0 {
		return &model.RawTable{}
	}
	return &model.RawTable{
		Header: rows[0],
		Rows:   rows[1:],
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText 把未知编码的字节解码为 UTF-8 文本。
// 顺序：UTF-8 BOM → UTF-16 BOM → 合法 UTF-8 → GB18030 兜底。
// 所有候选都失败时返回错误，绝不带着乱码继续。
func DecodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(bytes.TrimPrefix(data, bomUTF8)), nil

	case bytes.HasPrefix(data, bomUTF16LE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("UTF-16 解码失败: %w", err)
		}
		return string(out), nil

	case bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return "", fmt.Errorf("UTF-16 解码失败: %w", err)
		}
		return string(out), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	out, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("无法识别文件编码: %w", err)
	}
	return string(out), nil
}
