package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"effrecon/internal/model"
)

// Scope 导出范围
type Scope string

const (
	ScopeAll  Scope = "all"  // 全部记录
	ScopeGaps Scope = "gaps" // 仅进入回填流程的记录
)

// ParseScope 解析导出范围，空值取 all
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeGaps:
		return ScopeGaps, nil
	}
	return "", fmt.Errorf("unknown export scope %q", s)
}

// Options 导出选项
type Options struct {
	Scope    Scope
	Progress func(ProgressEvent)
}

// Columns 导出列
var Columns = []string{
	model.FieldID,
	model.FieldLine,
	model.FieldStyle,
	model.FieldJobTitle,
	model.FieldGroupCode,
	model.FieldEfficiency,
	"source",
	"job_title_source",
	"status",
}

// FileName 下载文件名
func FileName(scope Scope, ext string) string {
	base := "resolved_eff"
	if scope == ScopeGaps {
		base = "missing_eff"
	}
	return base + "." + strings.TrimPrefix(ext, ".")
}

// Select 按范围筛选记录
func Select(records []model.ResolvedRecord, scope Scope) []model.ResolvedRecord {
	if scope != ScopeGaps {
		return records
	}
	out := make([]model.ResolvedRecord, 0)
	for _, r := range records {
		if r.Source != model.SourceMeasured {
			out = append(out, r)
		}
	}
	return out
}

func formatEfficiency(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvRow(r model.ResolvedRecord) []string {
	return []string{
		r.ID,
		r.Line,
		r.Style,
		r.JobTitle,
		r.GroupCode,
		formatEfficiency(r.Efficiency),
		string(r.Source),
		string(r.JobTitleSource),
		string(r.Status),
	}
}

// WriteCSV 写出带 UTF-8 BOM 的 CSV（Excel 直接打开泰文不乱码）
func WriteCSV(w io.Writer, records []model.ResolvedRecord, opts Options) error {
	records = Select(records, opts.Scope)

	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
