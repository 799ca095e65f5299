package parser

import (
	"errors"
	"fmt"
	"strings"

	"effrecon/internal/model"
)

// SchemaError 输入表缺少必需字段
type SchemaError struct {
	Table   string          `json:"table"`
	Kind    model.TableKind `json:"kind"`
	Missing []string        `json:"missing"`
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s (%s) is missing required columns: %s", e.Table, e.Kind, strings.Join(e.Missing, ", "))
}

// Validate 检查表是否包含全部必需字段
func Validate(t Table, required []string) error {
	var missing []string
	for _, field := range required {
		if !t.HasColumn(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &SchemaError{Table: t.Name, Kind: t.Kind, Missing: missing}
}

// ValidateAll 校验全部表，所有缺失一次性返回
func ValidateAll(tables []Table) error {
	var errs []error
	for _, t := range tables {
		if err := Validate(t, model.RequiredFields(t.Kind)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SchemaErrors 从（可能被包装或 errors.Join 组合的）错误中取出全部 SchemaError
func SchemaErrors(err error) []*SchemaError {
	switch e := err.(type) {
	case nil:
		return nil
	case *SchemaError:
		return []*SchemaError{e}
	case interface{ Unwrap() []error }:
		var out []*SchemaError
		for _, inner := range e.Unwrap() {
			out = append(out, SchemaErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return SchemaErrors(e.Unwrap())
	}
	return nil
}
