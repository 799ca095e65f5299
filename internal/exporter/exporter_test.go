package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"effrecon/internal/model"
	"effrecon/internal/reconcile"
)

func sampleResult() *reconcile.Result {
	records := []model.ResolvedRecord{
		{ID: "1001", Line: "L1", Style: "S1", JobTitle: "Sewer", GroupCode: "G1", Efficiency: model.Float(80),
			Source: model.SourceMeasured, JobTitleSource: model.JobTitleFromStaffing, Status: model.StatusMeasured},
		{ID: "1002", Line: "L1", Style: "S1", JobTitle: "ช่างเย็บ", GroupCode: "G1", Efficiency: model.Float(62.5),
			Source: model.SourceGroupTitleAverage, JobTitleSource: model.JobTitleFromRawGroup, Status: model.StatusFilled},
		{ID: "1003", Line: "L9", JobTitle: "", Source: model.SourceUnresolved,
			JobTitleSource: model.JobTitleUnresolved, Status: model.StatusUnresolved},
	}
	return &reconcile.Result{Records: records, Summary: reconcile.Summarize(records)}
}

func TestWriteCSV_BOMAndRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult().Records, Options{Scope: ScopeAll}))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"1001", "L1", "S1", "Sewer", "G1", "80", "measured", "staffing", "measured"}, rows[1])
	assert.Equal(t, "ช่างเย็บ", rows[2][3])
	assert.Equal(t, "62.5", rows[2][5])
	assert.Equal(t, "", rows[3][5])
	assert.Equal(t, "unresolved", rows[3][8])
}

func TestWriteCSV_GapsScope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult().Records, Options{Scope: ScopeGaps}))

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1002", rows[1][0])
	assert.Equal(t, "1003", rows[2][0])
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Scope{"": ScopeAll, "ALL": ScopeAll, " gaps ": ScopeGaps} {
		got, err := ParseScope(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseScope("missing")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "resolved_eff.csv", FileName(ScopeAll, "csv"))
	assert.Equal(t, "missing_eff.xlsx", FileName(ScopeGaps, ".xlsx"))
}

func TestBuildWorkbook(t *testing.T) {
	t.Parallel()

	var percents []int
	f, err := BuildWorkbook(sampleResult(), Options{
		Scope:    ScopeAll,
		Progress: func(e ProgressEvent) { percents = append(percents, e.Percent) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{SheetResolved, SheetSummary}, f.GetSheetList())
	assert.Equal(t, []int{5, 80, 100}, percents)

	rows, err := f.GetRows(SheetResolved)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "80", rows[1][5])
	assert.Equal(t, "group_title_average", rows[2][6])

	styleID, err := f.GetCellStyle(SheetResolved, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"total", "3"}, summary[1])
	assert.Equal(t, []string{"gaps", "2"}, summary[3])
	assert.Equal(t, []string{"unresolved_job_title", "1"}, summary[7])
}

func TestBuildWorkbook_GapsScope(t *testing.T) {
	t.Parallel()

	f, err := BuildWorkbook(sampleResult(), Options{Scope: ScopeGaps})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	rows, err := reopened.GetRows(SheetResolved)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
