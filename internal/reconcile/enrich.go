package reconcile

import "effrecon/internal/model"

// Enrich 附加分组与已测效率
// 历史效率先按 (员工, 款式) 取均值再连接，保证每条基础记录只输出一条
func Enrich(base []model.BaseRecord, groups []model.GroupClassification, raw []model.RawEfficiency) []model.EnrichedRecord {
	groupByStyle := groupIndex(groups)

	measured := make(averages[idStyleKey])
	for _, r := range raw {
		if r.ID == "" || r.Style == "" {
			continue
		}
		measured.add(idStyleKey{ID: r.ID, Style: r.Style}, r.Efficiency)
	}

	out := make([]model.EnrichedRecord, 0, len(base))
	for _, b := range base {
		rec := model.EnrichedRecord{BaseRecord: b}
		if b.Style != "" {
			rec.GroupCode = groupByStyle[b.Style]
			if b.ID != "" {
				rec.Existing = measured.lookup(idStyleKey{ID: b.ID, Style: b.Style})
			}
		}
		out = append(out, rec)
	}
	return out
}

// groupIndex 款式 -> 分组，重复款式取第一次出现的分组
func groupIndex(groups []model.GroupClassification) firstValues[string] {
	idx := make(firstValues[string])
	for _, g := range groups {
		if g.Style == "" {
			continue
		}
		idx.add(g.Style, g.GroupCode)
	}
	return idx
}
