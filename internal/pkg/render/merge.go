package render

import (
	"github.com/weibaohui/landingkit/internal/model"
)

// mergeShallow 返回 base 与 override 的一层浅合并结果。
// 两个入参都不会被修改；override 中的嵌套值整体替换 base 中同名键。
func mergeShallow(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override)+1)
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// BuildInitialContent 创建项目时根据模板区块生成初始内容快照。
// 每个区块取 defaultContent 与调用方覆盖内容的浅合并；
// 调用方提供但模板中不存在的区块原样保留。
func BuildInitialContent(sections []model.Section, overrides model.ProjectContent) model.ProjectContent {
	content := make(model.ProjectContent, len(sections)+len(overrides))
	for id, override := range overrides {
		content[id] = mergeShallow(nil, override)
	}
	for _, section := range sections {
		content[section.ID] = mergeShallow(section.DefaultContent, overrides[section.ID])
	}
	return content
}
