package model

// TableKind 输入表类型（五张上传表各占一种）
type TableKind string

const (
	TableKindUnknown TableKind = "unknown"

	TableKindStaff         TableKind = "staff"          // 人员配置表
	TableKindStyles        TableKind = "styles"         // 产线款式表
	TableKindRawEfficiency TableKind = "raw_eff"        // 历史效率明细
	TableKindGroups        TableKind = "gwc"            // 款式分组（GWC）
	TableKindIndividual    TableKind = "individual_eff" // 个人效率汇总
)

// AllTableKinds 固定顺序的全部输入表，用于校验与报告
func AllTableKinds() []TableKind {
	return []TableKind{
		TableKindStaff,
		TableKindStyles,
		TableKindRawEfficiency,
		TableKindGroups,
		TableKindIndividual,
	}
}

// 规范字段名（列名经别名映射后的统一名称）
const (
	FieldID                = "id"
	FieldLine              = "line"
	FieldStyle             = "style"
	FieldJobTitle          = "job_title"
	FieldGroupCode         = "gwc"
	FieldEfficiency        = "eff"
	FieldEfficiencyPercent = "eff_percent"
)

// KeyFields 需要强制转为字符串键的字段
func KeyFields() []string {
	return []string{FieldID, FieldLine, FieldStyle, FieldGroupCode}
}

// RequiredFields 各类输入表的必需字段
func RequiredFields(kind TableKind) []string {
	switch kind {
	case TableKindStaff:
		return []string{FieldID, FieldLine, FieldJobTitle}
	case TableKindStyles:
		return []string{FieldLine, FieldStyle}
	case TableKindRawEfficiency:
		return []string{FieldID, FieldStyle, FieldEfficiency, FieldJobTitle, FieldGroupCode}
	case TableKindGroups:
		return []string{FieldStyle, FieldGroupCode}
	case TableKindIndividual:
		return []string{FieldID, FieldEfficiencyPercent}
	}
	return nil
}
