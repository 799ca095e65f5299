package parser

import (
	"effrecon/internal/model"
)

// rowReader 在已规范化的表上按规范字段取值
type rowReader struct {
	table    Table
	idx      map[string]int
	warnings []TypeCoercionWarning
}

func newRowReader(t Table, fields ...string) *rowReader {
	rr := &rowReader{table: t, idx: make(map[string]int, len(fields))}
	for _, f := range fields {
		rr.idx[f] = t.Index(f)
	}
	return rr
}

// rowNum 数据行在表格中的行号（表头为第 1 行）
func rowNum(i int) int {
	return i + 2
}

func (rr *rowReader) text(row []string, field string) string {
	return CleanText(cell(row, rr.idx[field]))
}

// key 取键值；键缺失时记一条提示，该行不会匹配任何查找
func (rr *rowReader) key(i int, row []string, field string) string {
	raw := cell(row, rr.idx[field])
	v := NormalizeKey(raw)
	if v == "" {
		rr.warn(i, field, raw, "empty key")
	}
	return v
}

func (rr *rowReader) number(i int, row []string, field string) *float64 {
	raw := cell(row, rr.idx[field])
	v, err := ParseNumber(raw)
	if err != nil {
		rr.warn(i, field, raw, err.Error())
		return nil
	}
	return v
}

func (rr *rowReader) warn(i int, field, value, reason string) {
	rr.warnings = append(rr.warnings, TypeCoercionWarning{
		Table:  rr.table.Name,
		Row:    rowNum(i),
		Column: field,
		Value:  value,
		Reason: reason,
	})
}

// DecodeStaff 解析人员配置表
func DecodeStaff(t Table) ([]model.StaffRecord, []TypeCoercionWarning) {
	rr := newRowReader(t, model.FieldID, model.FieldLine, model.FieldJobTitle)
	out := make([]model.StaffRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		out = append(out, model.StaffRecord{
			ID:       rr.key(i, row, model.FieldID),
			Line:     rr.key(i, row, model.FieldLine),
			JobTitle: rr.text(row, model.FieldJobTitle),
		})
	}
	return out, rr.warnings
}

// DecodeStyles 解析产线款式表
func DecodeStyles(t Table) ([]model.StyleAssignment, []TypeCoercionWarning) {
	rr := newRowReader(t, model.FieldLine, model.FieldStyle)
	out := make([]model.StyleAssignment, 0, len(t.Rows))
	for i, row := range t.Rows {
		out = append(out, model.StyleAssignment{
			Line:  rr.key(i, row, model.FieldLine),
			Style: rr.key(i, row, model.FieldStyle),
		})
	}
	return out, rr.warnings
}

// DecodeGroups 解析款式分组表
func DecodeGroups(t Table) ([]model.GroupClassification, []TypeCoercionWarning) {
	rr := newRowReader(t, model.FieldStyle, model.FieldGroupCode)
	out := make([]model.GroupClassification, 0, len(t.Rows))
	for i, row := range t.Rows {
		out = append(out, model.GroupClassification{
			Style:     rr.key(i, row, model.FieldStyle),
			GroupCode: rr.key(i, row, model.FieldGroupCode),
		})
	}
	return out, rr.warnings
}

// DecodeRawEfficiency 解析历史效率明细；line 列可选
func DecodeRawEfficiency(t Table) ([]model.RawEfficiency, []TypeCoercionWarning) {
	rr := newRowReader(t, model.FieldID, model.FieldStyle, model.FieldLine, model.FieldJobTitle, model.FieldGroupCode, model.FieldEfficiency)
	hasLine := rr.idx[model.FieldLine] >= 0
	out := make([]model.RawEfficiency, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec := model.RawEfficiency{
			ID:         rr.key(i, row, model.FieldID),
			Style:      rr.key(i, row, model.FieldStyle),
			JobTitle:   rr.text(row, model.FieldJobTitle),
			GroupCode:  NormalizeKey(cell(row, rr.idx[model.FieldGroupCode])),
			Efficiency: rr.number(i, row, model.FieldEfficiency),
		}
		if hasLine {
			rec.Line = NormalizeKey(cell(row, rr.idx[model.FieldLine]))
		}
		out = append(out, rec)
	}
	return out, rr.warnings
}

// DecodeIndividual 解析个人效率表
func DecodeIndividual(t Table) ([]model.IndividualEfficiency, []TypeCoercionWarning) {
	rr := newRowReader(t, model.FieldID, model.FieldEfficiencyPercent)
	out := make([]model.IndividualEfficiency, 0, len(t.Rows))
	for i, row := range t.Rows {
		out = append(out, model.IndividualEfficiency{
			ID:                rr.key(i, row, model.FieldID),
			EfficiencyPercent: rr.number(i, row, model.FieldEfficiencyPercent),
		})
	}
	return out, rr.warnings
}
