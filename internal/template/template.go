// Package template 管理供应商列模板表：templates.json 的读写与按文件名匹配。
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Template 单个供应商的模板：规范字段名 → 列规格字符串
type Template map[string]string

// Table 整张模板表：供应商键 → 模板
type Table map[string]Template

// Store 模板表的文件存储。
// 模板表一次性整表加载，保存永远是整表替换（先写临时文件再改名）。
type Store struct {
	path string
}

// NewStore 创建模板存储
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path 模板文件路径
func (s *Store) Path() string {
	return s.path
}

var bomPrefix = []byte{0xEF, 0xBB, 0xBF}

// Load 加载整张模板表。容忍 UTF-8 BOM；文件不存在时返回空表而不是报错。
func (s *Store) Load() (Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("读取模板文件失败: %w", err)
	}
	data = bytes.TrimPrefix(data, bomPrefix)

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("解析模板文件失败: %w", err)
	}
	return table, nil
}

// Save 整表替换保存。写临时文件后改名，避免写一半的模板表被读到。
func (s *Store) Save(table Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

var reCode = regexp.MustCompile(`\d{3}`)

// ExtractCode 从文件名中取第一段连续 3 位数字作为供应商编码，无则返回空串
func ExtractCode(fileName string) string {
	return reCode.FindString(fileName)
}

var (
	reExt       = regexp.MustCompile(`(?i)\.(xlsx|xls|csv)$`)
	reTrailCode = regexp.MustCompile(`\(\d{2,3}\)`)
)

// ParseSupplier 从文件名还原酒商名：去掉扩展名和尾部括号编码
func ParseSupplier(fileName string) string {
	name := reExt.ReplaceAllString(fileName, "")
	return strings.TrimSpace(reTrailCode.ReplaceAllString(name, ""))
}

// Match 按文件名匹配模板。
// 先取 3 位编码做键的子串匹配（键按字典序遍历，保证可复现，首个命中生效）；
// 文件名不含编码时退回用解析出的酒商名做精确键匹配。
// 未命中不是错误：返回空键和 nil，由调用方记录并跳过该文件。
func Match(table Table, fileName string) (string, Template) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if code := ExtractCode(fileName); code != "" {
		for _, k := range keys {
			if strings.Contains(k, code) {
				return k, table[k]
			}
		}
		return "", nil
	}

	supplier := ParseSupplier(fileName)
	for _, k := range keys {
		if k == supplier {
			return k, table[k]
		}
	}
	return "", nil
}
