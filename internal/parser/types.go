package parser

import (
	"fmt"
	"time"

	"effrecon/internal/model"
)

// Table 一张已读入内存的输入表
type Table struct {
	Name    string          `json:"name"` // 来源文件名
	Kind    model.TableKind `json:"kind"`
	Columns []string        `json:"columns"`
	Rows    [][]string      `json:"-"`
}

// Index 返回列下标，不存在时返回 -1
func (t Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn 是否包含指定列
func (t Table) HasColumn(column string) bool {
	return t.Index(column) >= 0
}

// Clone 深拷贝，归一化等步骤不修改入参
func (t Table) Clone() Table {
	out := Table{
		Name:    t.Name,
		Kind:    t.Kind,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// TypeCoercionWarning 某行的键或数值无法转换，该行按空值参与后续连接
type TypeCoercionWarning struct {
	Table  string `json:"table"`
	Row    int    `json:"row"` // 表格中的行号（表头为第 1 行）
	Column string `json:"column"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (w TypeCoercionWarning) String() string {
	return fmt.Sprintf("%s row %d column %s: %s (%q)", w.Table, w.Row, w.Column, w.Reason, w.Value)
}

// ParseResult 单张表的解析结果
type ParseResult struct {
	TableName    string                `json:"tableName"`
	Kind         model.TableKind       `json:"kind"`
	Status       string                `json:"status"` // imported/error
	ImportedRows int                   `json:"importedRows"`
	Warnings     []TypeCoercionWarning `json:"warnings,omitempty"`
	Errors       []string              `json:"errors,omitempty"`
	Duration     time.Duration         `json:"duration"`
}
