package parser

import (
	"effrecon/internal/model"
)

// TableRecognition 表类型识别结果
type TableRecognition struct {
	Kind       model.TableKind `json:"kind"`
	Confidence float64         `json:"confidence"` // 必需字段命中比例
}

// RecognizeTable 根据已映射的列名识别表类型
// 命中比例相同时取必需字段更多（更具体）的类型
func RecognizeTable(t Table) TableRecognition {
	best := TableRecognition{Kind: model.TableKindUnknown}
	bestFields := 0

	for _, kind := range model.AllTableKinds() {
		required := model.RequiredFields(kind)
		matched := 0
		for _, field := range required {
			if t.HasColumn(field) {
				matched++
			}
		}
		confidence := float64(matched) / float64(len(required))
		if confidence > best.Confidence || (confidence == best.Confidence && confidence > 0 && len(required) > bestFields) {
			best = TableRecognition{Kind: kind, Confidence: confidence}
			bestFields = len(required)
		}
	}
	return best
}

// Misplaced 上传位置的表缺字段、但完整匹配另一类表时返回该类型
func Misplaced(t Table) (model.TableKind, bool) {
	if Validate(t, model.RequiredFields(t.Kind)) == nil {
		return "", false
	}
	rec := RecognizeTable(t)
	if rec.Confidence < 1 || rec.Kind == t.Kind {
		return "", false
	}
	return rec.Kind, true
}
