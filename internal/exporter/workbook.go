package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"effrecon/internal/reconcile"
)

const (
	SheetResolved = "resolved"
	SheetSummary  = "summary"
)

// ProgressEvent 工作簿生成阶段
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

func (o Options) progress(percent int, stage string) {
	if o.Progress != nil {
		o.Progress(ProgressEvent{Percent: percent, Stage: stage})
	}
}

// BuildWorkbook 生成结果工作簿：resolved 明细 + summary 汇总
func BuildWorkbook(result *reconcile.Result, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), SheetResolved)
	opts.progress(5, "准备工作簿")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeResolvedSheet(f, result, opts, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	opts.progress(80, "写入明细")

	if err := writeSummarySheet(f, result, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}
	opts.progress(100, "完成")

	f.SetActiveSheet(0)
	return f, nil
}

func writeResolvedSheet(f *excelize.File, result *reconcile.Result, opts Options, headerStyle int) error {
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetResolved, "A1", &header); err != nil {
		return fmt.Errorf("写入 %s 表头失败: %w", SheetResolved, err)
	}

	records := Select(result.Records, opts.Scope)
	for i, r := range records {
		row := []any{r.ID, r.Line, r.Style, r.JobTitle, r.GroupCode, nil, string(r.Source), string(r.JobTitleSource), string(r.Status)}
		if r.Efficiency != nil {
			row[5] = *r.Efficiency
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetResolved, cell, &row); err != nil {
			return fmt.Errorf("写入 %s 第 %d 行失败: %w", SheetResolved, i+2, err)
		}
	}

	if err := f.SetRowStyle(SheetResolved, 1, 1, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetResolved, "A", "E", 14); err != nil {
		return err
	}
	return f.SetColWidth(SheetResolved, "G", "I", 20)
}

func writeSummarySheet(f *excelize.File, result *reconcile.Result, headerStyle int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("创建 %s 失败: %w", SheetSummary, err)
	}

	s := result.Summary
	data := [][]any{
		{"metric", "count"},
		{"total", s.Total},
		{"measured", s.Measured},
		{"gaps", s.Gaps},
		{"filled_by_group_title", s.FilledByGroupTitle},
		{"filled_by_individual", s.FilledByIndividual},
		{"unresolved_efficiency", s.UnresolvedEfficiency},
		{"unresolved_job_title", s.UnresolvedJobTitle},
	}
	for i, row := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", SheetSummary, err)
		}
	}

	if err := f.SetRowStyle(SheetSummary, 1, 1, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "A", 26)
}
