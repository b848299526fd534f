package model

// 模板中使用的规范字段名（与 templates.json 中的键一致）
const (
	FieldNameEN       = "酒名英文"
	FieldNameCN       = "酒名中文"
	FieldVintage      = "年份"
	FieldUnitPrice    = "单价"
	FieldQuantity     = "支数"
	FieldLooseCount   = "散支数"
	FieldCaseCount    = "整件数"
	FieldCaseSpec     = "件规"
	FieldNetContent   = "净含量"
	FieldWebsiteURL   = "网址"
	FieldSupplier     = "酒商"
	FieldSupplierCode = "酒商编码"
)

// CanonicalFields 规范字段的固定顺序（导出列顺序）
var CanonicalFields = []string{
	FieldNameEN,
	FieldNameCN,
	FieldVintage,
	FieldUnitPrice,
	FieldQuantity,
	FieldLooseCount,
	FieldCaseCount,
	FieldCaseSpec,
	FieldNetContent,
	FieldWebsiteURL,
	FieldSupplier,
	FieldSupplierCode,
}

// Record 规范化后的一行报价记录
type Record struct {
	NameEN       string `json:"nameEn"`       // 酒名英文
	NameCN       string `json:"nameCn"`       // 酒名中文
	Vintage      string `json:"vintage"`      // 年份（4位，1900-2099，无则为空）
	UnitPrice    string `json:"unitPrice"`    // 单价原文（保留货币符号等）
	Quantity     string `json:"quantity"`     // 支数
	LooseCount   string `json:"looseCount"`   // 散支数
	CaseCount    string `json:"caseCount"`    // 整件数
	CaseSpec     string `json:"caseSpec"`     // 件规
	NetContent   string `json:"netContent"`   // 净含量
	WebsiteURL   string `json:"websiteUrl"`   // 网址
	Supplier     string `json:"supplier"`     // 酒商
	SupplierCode string `json:"supplierCode"` // 酒商编码
	UploadedAt   string `json:"uploadedAt"`   // 上传时间
}

// Get 按规范字段名取值
func (r *Record) Get(field string) string {
	switch field {
	case FieldNameEN:
		return r.NameEN
	case FieldNameCN:
		return r.NameCN
	case FieldVintage:
		return r.Vintage
	case FieldUnitPrice:
		return r.UnitPrice
	case FieldQuantity:
		return r.Quantity
	case FieldLooseCount:
		return r.LooseCount
	case FieldCaseCount:
		return r.CaseCount
	case FieldCaseSpec:
		return r.CaseSpec
	case FieldNetContent:
		return r.NetContent
	case FieldWebsiteURL:
		return r.WebsiteURL
	case FieldSupplier:
		return r.Supplier
	case FieldSupplierCode:
		return r.SupplierCode
	default:
		return ""
	}
}

// Set 按规范字段名赋值，未知字段忽略
func (r *Record) Set(field, value string) {
	switch field {
	case FieldNameEN:
		r.NameEN = value
	case FieldNameCN:
		r.NameCN = value
	case FieldVintage:
		r.Vintage = value
	case FieldUnitPrice:
		r.UnitPrice = value
	case FieldQuantity:
		r.Quantity = value
	case FieldLooseCount:
		r.LooseCount = value
	case FieldCaseCount:
		r.CaseCount = value
	case FieldCaseSpec:
		r.CaseSpec = value
	case FieldNetContent:
		r.NetContent = value
	case FieldWebsiteURL:
		r.WebsiteURL = value
	case FieldSupplier:
		r.Supplier = value
	case FieldSupplierCode:
		r.SupplierCode = value
	}
}

// RawTable 上传文件解析出的原始表格。
// 首行固定作为表头消费（与历史行为一致）；字母寻址只用列下标，名称寻址先查表头。
type RawTable struct {
	Header []string   // 首行
	Rows   [][]string // 表头之后的数据行
}

// Width 原始表最大列宽
func (t *RawTable) Width() int {
	w := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}
