package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effrecon/internal/model"
)

func TestNormalizeTable_Idempotent(t *testing.T) {
	t.Parallel()

	in := Table{
		Name:    "raw.csv",
		Kind:    model.TableKindRawEfficiency,
		Columns: []string{" ID ", "Style", "EFF", "job_title", "GWC"},
		Rows: [][]string{
			{"1001.0", " S1 ", "70", " Sewer ", "G1"},
			{"1002", "S2", "", "Cutter", "nan"},
		},
	}

	once := NormalizeTable(in)
	twice := NormalizeTable(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("NormalizeTable not idempotent (-once +twice):\n%s", diff)
	}

	assert.Equal(t, []string{"id", "style", "eff", "job_title", "gwc"}, once.Columns)
	assert.Equal(t, "1001", once.Rows[0][0])
	assert.Equal(t, "S1", once.Rows[0][1])
	assert.Equal(t, " Sewer ", once.Rows[0][3], "non-key columns are left for the decoder")
	assert.Equal(t, "", once.Rows[1][4])

	// 入参不被修改
	assert.Equal(t, "1001.0", in.Rows[0][0])
}

func TestDecodeRawEfficiency_Warnings(t *testing.T) {
	t.Parallel()

	tbl := NormalizeTable(Table{
		Name:    "raw.csv",
		Kind:    model.TableKindRawEfficiency,
		Columns: []string{"id", "style", "eff", "job_title", "gwc"},
		Rows: [][]string{
			{"1001", "S1", "75.5", "Sewer", "G1"},
			{"", "S1", "abc", "Sewer", "G1"},
		},
	})

	recs, warnings := DecodeRawEfficiency(tbl)
	require.Len(t, recs, 2)
	require.NotNil(t, recs[0].Efficiency)
	assert.Equal(t, 75.5, *recs[0].Efficiency)
	assert.Equal(t, "", recs[0].Line)
	assert.Nil(t, recs[1].Efficiency)

	require.Len(t, warnings, 2)
	assert.Equal(t, 3, warnings[0].Row)
	assert.Equal(t, model.FieldID, warnings[0].Column)
	assert.Equal(t, model.FieldEfficiency, warnings[1].Column)
	assert.Equal(t, "abc", warnings[1].Value)
}

func TestDecodeStaff(t *testing.T) {
	t.Parallel()

	recs, warnings := DecodeStaff(Table{
		Name:    "staff.csv",
		Columns: []string{"id", "line", "job_title"},
		Rows:    [][]string{{"E1", "L1", " Sewer "}},
	})
	assert.Empty(t, warnings)
	assert.Equal(t, []model.StaffRecord{{ID: "E1", Line: "L1", JobTitle: "Sewer"}}, recs)
}
