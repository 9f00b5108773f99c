package render

import (
	"sort"

	"github.com/weibaohui/landingkit/internal/model"
)

// KindOf 判断默认值的字段类型；无法识别的值按 string 处理
func KindOf(value any) model.FieldKind {
	switch value.(type) {
	case bool:
		return model.FieldBoolean
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return model.FieldNumber
	case []any, []map[string]any, []string:
		return model.FieldList
	case map[string]any:
		return model.FieldObject
	default:
		return model.FieldString
	}
}

// DescribeFields 根据 defaultContent 推导字段声明，按键名排序
func DescribeFields(defaultContent map[string]any) []model.FieldSpec {
	keys := make([]string, 0, len(defaultContent))
	for k := range defaultContent {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]model.FieldSpec, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, model.FieldSpec{Key: k, Kind: KindOf(defaultContent[k])})
	}
	return fields
}

// WithFieldSchema 为每个区块填充字段声明，返回新切片
func WithFieldSchema(sections []model.Section) []model.Section {
	out := make([]model.Section, len(sections))
	for i, s := range sections {
		s.Fields = DescribeFields(s.DefaultContent)
		out[i] = s
	}
	return out
}
