package parser

import (
	"fmt"
	"sort"

	"effrecon/internal/model"
)

// DefaultAliases 内置列名别名（规范字段 -> 可识别的原始列名）
func DefaultAliases() map[string][]string {
	return map[string][]string{
		model.FieldID: {
			"id", "emp_id", "emp id", "emp no", "emp_no", "employee_id", "employee id", "employee no",
			"รหัสพนักงาน", "รหัส",
		},
		model.FieldLine: {
			"line", "line_no", "line no", "production line", "ไลน์", "สายการผลิต",
		},
		model.FieldStyle: {
			"style", "style_no", "style no", "style code", "สไตล์",
		},
		model.FieldJobTitle: {
			"job_title", "job title", "jobtitle", "position", "job", "ตำแหน่ง",
		},
		model.FieldGroupCode: {
			"gwc", "group", "group_code", "group code", "กลุ่ม",
		},
		model.FieldEfficiency: {
			"eff", "efficiency", "eff_value", "efficiency_value", "eff%", "ประสิทธิภาพ",
		},
		model.FieldEfficiencyPercent: {
			"eff_percent", "eff %", "eff_pct", "efficiency_percent", "efficiency %", "%eff",
		},
	}
}

// kindRemaps 个别表类型对规范字段的改写：个人效率表里的 eff 就是 eff_percent
var kindRemaps = map[model.TableKind]map[string]string{
	model.TableKindIndividual: {model.FieldEfficiency: model.FieldEfficiencyPercent},
}

// FieldMapper 列名映射器，导入时构建一次，整个流程不再重新推断
type FieldMapper struct {
	lookup  map[string]string   // 规范化别名 -> 规范字段
	aliases map[string][]string // 规范字段 -> 生效别名（用于展示）
}

// NewFieldMapper 创建列名映射器；extra 优先于内置别名
func NewFieldMapper(extra map[string][]string) *FieldMapper {
	m := &FieldMapper{
		lookup:  make(map[string]string),
		aliases: make(map[string][]string),
	}
	m.register(extra)
	m.register(DefaultAliases())
	return m
}

func (m *FieldMapper) register(aliases map[string][]string) {
	fields := make([]string, 0, len(aliases))
	for field := range aliases {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		canonical := NormalizeColumnName(field)
		if canonical == "" {
			continue
		}
		names := append([]string{canonical}, aliases[field]...)
		for _, alias := range names {
			key := NormalizeColumnName(alias)
			if key == "" {
				continue
			}
			if _, taken := m.lookup[key]; taken {
				continue
			}
			m.lookup[key] = canonical
			m.aliases[canonical] = append(m.aliases[canonical], key)
		}
	}
}

// Resolve 返回列名对应的规范字段
func (m *FieldMapper) Resolve(column string) (string, bool) {
	field, ok := m.lookup[NormalizeColumnName(column)]
	return field, ok
}

// Aliases 生效的别名表
func (m *FieldMapper) Aliases() map[string][]string {
	out := make(map[string][]string, len(m.aliases))
	for field, names := range m.aliases {
		out[field] = append([]string(nil), names...)
	}
	return out
}

// MapTable 把列名改写为规范字段名
// 同一规范字段出现多列时取第一列，其余列保留原列名并给出提示
func (m *FieldMapper) MapTable(t Table) (Table, []string) {
	out := t.Clone()
	var notes []string

	remap := kindRemaps[t.Kind]
	seen := make(map[string]int)

	for i, col := range out.Columns {
		normalized := NormalizeColumnName(col)
		out.Columns[i] = normalized

		field, ok := m.lookup[normalized]
		if !ok {
			continue
		}
		if to, ok := remap[field]; ok {
			field = to
		}
		if first, dup := seen[field]; dup {
			notes = append(notes, fmt.Sprintf("column %q also maps to %q; using column %q", col, field, t.Columns[first]))
			continue
		}
		seen[field] = i
		out.Columns[i] = field
	}

	return out, notes
}
