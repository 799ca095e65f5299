package parser

import "effrecon/internal/model"

// NormalizeTable 统一列名并把键列转为字符串键，幂等
func NormalizeTable(t Table) Table {
	out := t.Clone()
	for i, col := range out.Columns {
		out.Columns[i] = NormalizeColumnName(col)
	}

	keyIdx := make([]int, 0, 4)
	for _, field := range model.KeyFields() {
		if idx := out.Index(field); idx >= 0 {
			keyIdx = append(keyIdx, idx)
		}
	}

	for _, row := range out.Rows {
		for _, idx := range keyIdx {
			if idx < len(row) {
				row[idx] = NormalizeKey(row[idx])
			}
		}
	}
	return out
}
