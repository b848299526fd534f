package model

// FileResult 单个上传文件的清洗结果
type FileResult struct {
	FileName    string `json:"fileName"`
	TemplateKey string `json:"templateKey,omitempty"` // 命中的模板键，未命中为空
	Supplier    string `json:"supplier,omitempty"`
	Rows        int    `json:"rows"`            // 提取出的行数
	Matched     bool   `json:"matched"`         // 是否命中模板
	Error       string `json:"error,omitempty"` // 读取/提取失败原因
}

// CleanReport 一次清洗合并的汇总报告
type CleanReport struct {
	Files      []FileResult `json:"files"`
	TotalFiles int          `json:"totalFiles"`
	Matched    int          `json:"matched"`
	Skipped    int          `json:"skipped"`
	TotalRows  int          `json:"totalRows"`
	ExportPath string       `json:"exportPath,omitempty"`
}

// QueryOptions 合并表查询条件
type QueryOptions struct {
	Keyword     string `form:"keyword"`     // 酒名（中英文）或年份的包含匹配，忽略大小写
	Supplier    string `form:"supplier"`    // 酒商精确匹配，空为全部
	Vintage     string `form:"vintage"`     // 年份精确匹配，空为全部
	SortByPrice bool   `form:"sortByPrice"` // 按单价数值升序，无法解析的排最后
	OnlyLowest  bool   `form:"onlyLowest"`  // 仅返回每组最低价行
}
