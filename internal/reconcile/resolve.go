package reconcile

import "effrecon/internal/model"

// Sources 缺口回填的候选数据源
type Sources struct {
	Raw        []model.RawEfficiency
	Staff      []model.StaffRecord
	Individual []model.IndividualEfficiency
}

// lookups 由 Sources 预先构建的查找表，每个键唯一
type lookups struct {
	titleByIDGroup  firstValues[idGroupKey]
	titleByID       firstValues[string]
	effByGroupTitle averages[idGroupTitleKey]
	effByIndividual averages[string]
}

func buildLookups(src Sources) lookups {
	l := lookups{
		titleByIDGroup:  make(firstValues[idGroupKey]),
		titleByID:       make(firstValues[string]),
		effByGroupTitle: make(averages[idGroupTitleKey]),
		effByIndividual: make(averages[string]),
	}

	for _, r := range src.Raw {
		if r.ID == "" || r.GroupCode == "" {
			continue
		}
		l.titleByIDGroup.add(idGroupKey{ID: r.ID, GroupCode: r.GroupCode}, r.JobTitle)
		if r.JobTitle != "" {
			l.effByGroupTitle.add(idGroupTitleKey{ID: r.ID, GroupCode: r.GroupCode, JobTitle: r.JobTitle}, r.Efficiency)
		}
	}
	for _, s := range src.Staff {
		if s.ID == "" {
			continue
		}
		l.titleByID.add(s.ID, s.JobTitle)
	}
	for _, ie := range src.Individual {
		if ie.ID == "" {
			continue
		}
		l.effByIndividual.add(ie.ID, ie.EfficiencyPercent)
	}
	return l
}

// Resolve 对缺少效率的记录按固定顺序回填，先命中者生效，已有效率不会被覆盖
//
// 岗位：员工+分组 的历史岗位 -> 人员表岗位（按员工）
// 效率：员工+分组+岗位 的历史均值 -> 个人效率表均值（按员工）
func Resolve(records []model.EnrichedRecord, src Sources) []model.ResolvedRecord {
	l := buildLookups(src)

	out := make([]model.ResolvedRecord, 0, len(records))
	for _, rec := range records {
		if !rec.IsGap() {
			out = append(out, measuredRecord(rec))
			continue
		}
		out = append(out, l.resolveGap(rec))
	}
	return out
}

func measuredRecord(rec model.EnrichedRecord) model.ResolvedRecord {
	v := *rec.Existing
	titleSource := model.JobTitleFromStaffing
	if rec.JobTitle == "" {
		titleSource = model.JobTitleUnresolved
	}
	return model.ResolvedRecord{
		ID:             rec.ID,
		Line:           rec.Line,
		Style:          rec.Style,
		JobTitle:       rec.JobTitle,
		GroupCode:      rec.GroupCode,
		Efficiency:     &v,
		Source:         model.SourceMeasured,
		JobTitleSource: titleSource,
		Status:         model.StatusMeasured,
	}
}

func (l lookups) resolveGap(rec model.EnrichedRecord) model.ResolvedRecord {
	out := model.ResolvedRecord{
		ID:             rec.ID,
		Line:           rec.Line,
		Style:          rec.Style,
		GroupCode:      rec.GroupCode,
		Source:         model.SourceUnresolved,
		JobTitleSource: model.JobTitleUnresolved,
		Status:         model.StatusUnresolved,
	}

	out.JobTitle, out.JobTitleSource = l.resolveJobTitle(rec)

	if out.JobTitle != "" && rec.GroupCode != "" {
		key := idGroupTitleKey{ID: rec.ID, GroupCode: rec.GroupCode, JobTitle: out.JobTitle}
		if v := l.effByGroupTitle.lookup(key); v != nil {
			out.Efficiency = v
			out.Source = model.SourceGroupTitleAverage
		}
	}
	if out.Efficiency == nil && rec.ID != "" {
		if v := l.effByIndividual.lookup(rec.ID); v != nil {
			out.Efficiency = v
			out.Source = model.SourceIndividualAverage
		}
	}
	if out.Efficiency != nil {
		out.Status = model.StatusFilled
	}
	return out
}

func (l lookups) resolveJobTitle(rec model.EnrichedRecord) (string, model.JobTitleSource) {
	if rec.ID == "" {
		// 无员工编号时查不到任何来源，只能沿用人员表本行的岗位
		if rec.JobTitle != "" {
			return rec.JobTitle, model.JobTitleFromStaffing
		}
		return "", model.JobTitleUnresolved
	}
	if rec.GroupCode != "" {
		if title, ok := l.titleByIDGroup[idGroupKey{ID: rec.ID, GroupCode: rec.GroupCode}]; ok {
			return title, model.JobTitleFromRawGroup
		}
	}
	if title, ok := l.titleByID[rec.ID]; ok {
		return title, model.JobTitleFromStaffing
	}
	return "", model.JobTitleUnresolved
}
