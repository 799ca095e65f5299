// Package reconcile 员工效率对账：组装基础记录、附加分组与已测效率、回填缺口。
//
// 每一步都以表为参数并返回新的切片，不持有任何全局状态。
package reconcile

import "effrecon/internal/model"

// Inputs 一次对账的全部输入（已规范化并完成校验）
type Inputs struct {
	Staff      []model.StaffRecord
	Styles     []model.StyleAssignment
	Raw        []model.RawEfficiency
	Groups     []model.GroupClassification
	Individual []model.IndividualEfficiency
}

// Result 对账结果
type Result struct {
	Records []model.ResolvedRecord `json:"records"`
	Summary model.Summary          `json:"summary"`
}

// Run 执行 组装 -> 附加 -> 回填
func Run(in Inputs) *Result {
	base := Assemble(in.Staff, in.Styles)
	enriched := Enrich(base, in.Groups, in.Raw)
	resolved := Resolve(enriched, Sources{
		Raw:        in.Raw,
		Staff:      in.Staff,
		Individual: in.Individual,
	})
	return &Result{
		Records: resolved,
		Summary: Summarize(resolved),
	}
}

// Gaps 进入回填流程的记录（原始已测效率为空）
func (r *Result) Gaps() []model.ResolvedRecord {
	out := make([]model.ResolvedRecord, 0)
	for _, rec := range r.Records {
		if rec.Source != model.SourceMeasured {
			out = append(out, rec)
		}
	}
	return out
}

// Summarize 统计回填结果
func Summarize(records []model.ResolvedRecord) model.Summary {
	s := model.Summary{Total: len(records)}
	for _, rec := range records {
		switch rec.Source {
		case model.SourceMeasured:
			s.Measured++
			continue
		case model.SourceGroupTitleAverage:
			s.FilledByGroupTitle++
		case model.SourceIndividualAverage:
			s.FilledByIndividual++
		default:
			s.UnresolvedEfficiency++
		}
		s.Gaps++
		if rec.JobTitleSource == model.JobTitleUnresolved {
			s.UnresolvedJobTitle++
		}
	}
	return s
}
