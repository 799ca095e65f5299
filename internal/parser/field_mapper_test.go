package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"effrecon/internal/model"
)

func TestFieldMapper_MapTable(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(nil)
	in := Table{
		Name:    "manpower.csv",
		Kind:    model.TableKindStaff,
		Columns: []string{" Employee ID", "LINE", "Position", "Remark", "emp_no"},
	}

	out, notes := m.MapTable(in)
	assert.Equal(t, []string{"id", "line", "job_title", "remark", "emp_no"}, out.Columns)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0], "emp_no")

	// 入参不被修改
	assert.Equal(t, " Employee ID", in.Columns[0])
}

func TestFieldMapper_ConfiguredAliasesTakePrecedence(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(map[string][]string{
		model.FieldStyle: {"Model"},
		model.FieldLine:  {"group"}, // 覆盖内置 group -> gwc
	})

	field, ok := m.Resolve("MODEL")
	require.True(t, ok)
	assert.Equal(t, model.FieldStyle, field)

	field, ok = m.Resolve("Group")
	require.True(t, ok)
	assert.Equal(t, model.FieldLine, field)

	assert.Contains(t, m.Aliases()[model.FieldStyle], "model")
}

func TestFieldMapper_IndividualEffIsPercent(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(nil)
	out, _ := m.MapTable(Table{Kind: model.TableKindIndividual, Columns: []string{"ID", "Eff"}})
	assert.Equal(t, []string{"id", "eff_percent"}, out.Columns)

	out, _ = m.MapTable(Table{Kind: model.TableKindRawEfficiency, Columns: []string{"ID", "Eff"}})
	assert.Equal(t, []string{"id", "eff"}, out.Columns)
}
