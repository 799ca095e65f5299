package model

// ResolutionSource 效率值来源
type ResolutionSource string

const (
	SourceMeasured          ResolutionSource = "measured"            // 已有测量值（按员工+款式取均值）
	SourceGroupTitleAverage ResolutionSource = "group_title_average" // 员工+分组+岗位 的历史均值
	SourceIndividualAverage ResolutionSource = "individual_average"  // 个人效率表均值
	SourceUnresolved        ResolutionSource = "unresolved"
)

// JobTitleSource 岗位来源
type JobTitleSource string

const (
	JobTitleFromStaffing JobTitleSource = "staffing"  // 人员配置表（按员工）
	JobTitleFromRawGroup JobTitleSource = "raw_group" // 历史效率明细（按员工+分组）
	JobTitleUnresolved   JobTitleSource = "unresolved"
)

// ResolutionStatus 记录最终状态，与“字段为空”区分开
type ResolutionStatus string

const (
	StatusMeasured   ResolutionStatus = "measured"
	StatusFilled     ResolutionStatus = "filled"
	StatusUnresolved ResolutionStatus = "unresolved"
)

// Summary 一次对账的汇总统计
type Summary struct {
	Total                int `json:"total"`
	Measured             int `json:"measured"`
	Gaps                 int `json:"gaps"`
	FilledByGroupTitle   int `json:"filledByGroupTitle"`
	FilledByIndividual   int `json:"filledByIndividual"`
	UnresolvedEfficiency int `json:"unresolvedEfficiency"`
	UnresolvedJobTitle   int `json:"unresolvedJobTitle"`
}
