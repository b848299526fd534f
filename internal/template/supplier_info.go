package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SupplierInfo 供应商附加信息表（suppliers.json），键为供应商名。
// 结构松散的键值对，常见键：display_name、联系人、备注。
type SupplierInfo map[string]map[string]string

// LoadSupplierInfo 加载供应商信息表。文件不存在返回空表；同样容忍 UTF-8 BOM。
func LoadSupplierInfo(path string) (SupplierInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SupplierInfo{}, nil
		}
		return nil, fmt.Errorf("读取供应商信息失败: %w", err)
	}
	data = bytes.TrimPrefix(data, bomPrefix)

	var info SupplierInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("解析供应商信息失败: %w", err)
	}
	return info, nil
}
