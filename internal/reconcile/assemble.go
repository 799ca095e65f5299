package reconcile

import "effrecon/internal/model"

// Assemble 人员表按产线左连接款式表
// 没有款式的人员保留一条空款式记录；一条产线多个款式时每个款式一条
func Assemble(staff []model.StaffRecord, styles []model.StyleAssignment) []model.BaseRecord {
	byLine := make(map[string][]string)
	seen := make(map[model.StyleAssignment]struct{})
	for _, s := range styles {
		if s.Line == "" || s.Style == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		byLine[s.Line] = append(byLine[s.Line], s.Style)
	}

	out := make([]model.BaseRecord, 0, len(staff))
	for _, p := range staff {
		matched := byLine[p.Line]
		if p.Line == "" || len(matched) == 0 {
			out = append(out, model.BaseRecord{ID: p.ID, Line: p.Line, JobTitle: p.JobTitle})
			continue
		}
		for _, style := range matched {
			out = append(out, model.BaseRecord{ID: p.ID, Line: p.Line, Style: style, JobTitle: p.JobTitle})
		}
	}
	return out
}
