package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"effrecon/internal/model"
	"effrecon/internal/parser"
)

func csvInput(name, body string) FileInput {
	return FileInput{Filename: name, Reader: strings.NewReader(body)}
}

func rawWorkbook(t *testing.T, rows [][]any) FileInput {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	_ = f.Close()
	return FileInput{Filename: "Raw_Eff_All_Shift.xlsx", Reader: &buf}
}

func TestCoordinator_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	files := map[model.TableKind]FileInput{
		model.TableKindStaff: csvInput("manpower.csv",
			"\xef\xbb\xbfID,LINE,Position\n1001,L1,Sewer\n1002,L1,Sewer\n1003,L9,Cutter\n"),
		model.TableKindStyles: csvInput("style_list.csv",
			"Line,Style\nL1,S1\n"),
		model.TableKindRawEfficiency: rawWorkbook(t, [][]any{
			{"ID", "Style", "Eff", "Job Title", "GWC"},
			{1001, "S1", 70, "Sewer", "G1"},
			{1001, "S1", 90, "Sewer", "G1"},
			{"1002.0", "S7", 55, "Sewer", "G1"},
			{1002, "S7", "n/a?", "Sewer", "G1"},
		}),
		model.TableKindGroups: csvInput("gwc.csv",
			"style,gwc\nS1,G1\nS1,G2\nS7,G1\n"),
		model.TableKindIndividual: csvInput("individual.csv",
			"Emp ID,Eff %\n1003,66%\n"),
	}

	var events []ProgressEvent
	c := NewCoordinator(nil, parser.ReadOptions{}, nil)
	out, err := c.Run(context.Background(), files, func(e ProgressEvent) { events = append(events, e) })
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	require.Len(t, out.Result.Records, 3)
	byID := map[string]model.ResolvedRecord{}
	for _, r := range out.Result.Records {
		byID[r.ID] = r
	}

	assert.Equal(t, model.SourceMeasured, byID["1001"].Source)
	assert.InDelta(t, 80.0, *byID["1001"].Efficiency, 1e-9)

	assert.Equal(t, model.SourceGroupTitleAverage, byID["1002"].Source)
	assert.InDelta(t, 55.0, *byID["1002"].Efficiency, 1e-9)
	assert.Equal(t, "G1", byID["1002"].GroupCode)

	assert.Equal(t, model.SourceIndividualAverage, byID["1003"].Source)
	assert.InDelta(t, 66.0, *byID["1003"].Efficiency, 1e-9)
	assert.Equal(t, "", byID["1003"].Style)

	report := out.Report
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 5, report.TotalTables)
	assert.Equal(t, 1, report.WarningCount)

	require.NotEmpty(t, events)
	assert.Equal(t, "start", events[0].Type)
	assert.Equal(t, "done", events[len(events)-1].Type)
}

func TestCoordinator_Run_SchemaErrorsSurfaceTogether(t *testing.T) {
	t.Parallel()

	files := map[model.TableKind]FileInput{
		model.TableKindStaff:         csvInput("manpower.csv", "id,line\n1,L1\n"),
		model.TableKindStyles:        csvInput("styles.csv", "line,style\nL1,S1\n"),
		model.TableKindRawEfficiency: csvInput("raw.csv", "id,line,eff\n1,L1,80\n"),
		model.TableKindGroups:        csvInput("gwc.csv", "style,gwc\nS1,G1\n"),
		model.TableKindIndividual:    csvInput("ind.csv", "id\n1\n"),
	}

	c := NewCoordinator(nil, parser.ReadOptions{}, nil)
	out, err := c.Run(context.Background(), files, nil)
	require.Error(t, err)
	assert.Nil(t, out.Result)

	schemaErrs := parser.SchemaErrors(err)
	require.Len(t, schemaErrs, 3)
	assert.Equal(t, model.TableKindStaff, schemaErrs[0].Kind)
	assert.Equal(t, []string{"job_title"}, schemaErrs[0].Missing)
	assert.Equal(t, model.TableKindRawEfficiency, schemaErrs[1].Kind)
	assert.Equal(t, []string{"style", "job_title", "gwc"}, schemaErrs[1].Missing)
	assert.Equal(t, model.TableKindIndividual, schemaErrs[2].Kind)
	assert.Equal(t, []string{"eff_percent"}, schemaErrs[2].Missing)

	for _, tr := range out.Report.Tables {
		assert.Equal(t, "error", tr.Status)
	}
}

func TestCoordinator_Run_MissingUpload(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(nil, parser.ReadOptions{}, nil)
	_, err := c.Run(context.Background(), map[model.TableKind]FileInput{
		model.TableKindStaff: csvInput("manpower.csv", "id,line,job_title\n1,L1,Sewer\n"),
	}, nil)

	var missing *MissingFileError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, model.TableKindStyles, missing.Kind)
}

func TestCoordinator_Run_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator(nil, parser.ReadOptions{}, nil)
	_, err := c.Run(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoordinator_Run_SwappedUploadsAreNoted(t *testing.T) {
	t.Parallel()

	files := map[model.TableKind]FileInput{
		model.TableKindStaff:         csvInput("manpower.csv", "id,line,job_title\n1,L1,Sewer\n"),
		model.TableKindStyles:        csvInput("gwc.csv", "style,gwc\nS1,G1\n"),
		model.TableKindRawEfficiency: csvInput("raw.csv", "id,style,eff,job_title,gwc\n1,S1,80,Sewer,G1\n"),
		model.TableKindGroups:        csvInput("style_list.csv", "line,style\nL1,S1\n"),
		model.TableKindIndividual:    csvInput("ind.csv", "id,eff_percent\n1,70\n"),
	}

	c := NewCoordinator(nil, parser.ReadOptions{}, nil)
	out, err := c.Run(context.Background(), files, nil)
	require.Error(t, err)
	require.Len(t, parser.SchemaErrors(err), 2)
	assert.Equal(t, []string{
		"gwc.csv: columns match the gwc table; check the upload field",
		"style_list.csv: columns match the styles table; check the upload field",
	}, out.Report.Notes)
}
