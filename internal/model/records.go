package model

// StaffRecord 人员配置：一名员工在一条产线上的岗位
type StaffRecord struct {
	ID       string `json:"id"`
	Line     string `json:"line"`
	JobTitle string `json:"jobTitle"`
}

// StyleAssignment 产线当前生产的款式（一条产线可对应多个款式）
type StyleAssignment struct {
	Line  string `json:"line"`
	Style string `json:"style"`
}

// GroupClassification 款式所属分组（GWC）
type GroupClassification struct {
	Style     string `json:"style"`
	GroupCode string `json:"groupCode"`
}

// RawEfficiency 历史效率观测，同一 (员工, 款式) 可能有多行
type RawEfficiency struct {
	ID         string   `json:"id"`
	Style      string   `json:"style"`
	Line       string   `json:"line,omitempty"`
	JobTitle   string   `json:"jobTitle"`
	GroupCode  string   `json:"groupCode"`
	Efficiency *float64 `json:"efficiency"`
}

// IndividualEfficiency 仅按员工汇总的粗粒度效率
type IndividualEfficiency struct {
	ID                string   `json:"id"`
	EfficiencyPercent *float64 `json:"efficiencyPercent"`
}

// BaseRecord 人员 ⟕ 款式 的基础记录；Style 为空表示该产线没有款式
type BaseRecord struct {
	ID       string `json:"id"`
	Line     string `json:"line"`
	Style    string `json:"style"`
	JobTitle string `json:"jobTitle"`
}

// EnrichedRecord 基础记录 + 分组 + 已测效率（可能为空）
type EnrichedRecord struct {
	BaseRecord
	GroupCode string   `json:"groupCode"`
	Existing  *float64 `json:"existing"`
}

// IsGap 是否缺少已测效率
func (r EnrichedRecord) IsGap() bool {
	return r.Existing == nil
}

// ResolvedRecord 最终输出记录，每条基础记录对应一条
type ResolvedRecord struct {
	ID             string           `json:"id"`
	Line           string           `json:"line"`
	Style          string           `json:"style"`
	JobTitle       string           `json:"jobTitle"`
	GroupCode      string           `json:"groupCode"`
	Efficiency     *float64         `json:"efficiency"`
	Source         ResolutionSource `json:"source"`
	JobTitleSource JobTitleSource   `json:"jobTitleSource"`
	Status         ResolutionStatus `json:"status"`
}

// Float 返回指向 v 的指针，便于构造可空数值
func Float(v float64) *float64 {
	return &v
}
