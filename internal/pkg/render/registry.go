package render

import "sort"

// Component 已注册的区块组件句柄
type Component struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Registry 组件注册表：组件名 -> 句柄
type Registry interface {
	Lookup(name string) (Component, bool)
}

// MapRegistry 基于 map 的注册表，构建后只读
type MapRegistry struct {
	components map[string]Component
}

// NewRegistry 用给定组件构建注册表
func NewRegistry(components ...Component) *MapRegistry {
	m := make(map[string]Component, len(components))
	for _, c := range components {
		m[c.Name] = c
	}
	return &MapRegistry{components: m}
}

// Lookup 按名称查找组件
func (r *MapRegistry) Lookup(name string) (Component, bool) {
	c, ok := r.components[name]
	return c, ok
}

// Names 返回已注册的组件名（按字母序）
func (r *MapRegistry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry 落地页可渲染的全部组件
func DefaultRegistry() *MapRegistry {
	return NewRegistry(
		Component{Name: "Hero", Description: "主视觉区"},
		Component{Name: "Benefits", Description: "卖点网格"},
		Component{Name: "SocialProof", Description: "评价与数据背书"},
		Component{Name: "ProductShowcase", Description: "商品详情展示"},
		Component{Name: "FinalCTA", Description: "底部行动号召"},
		Component{Name: "AnnouncementBar", Description: "顶部公告条"},
		Component{Name: "VideoHero", Description: "视频主视觉"},
		Component{Name: "PressLogos", Description: "媒体报道"},
		Component{Name: "BeforeAfter", Description: "使用前后对比"},
		Component{Name: "ComparisonTable", Description: "竞品对比表"},
		Component{Name: "FounderStory", Description: "创始人故事"},
		Component{Name: "UGCGallery", Description: "用户内容墙"},
		Component{Name: "ProductCarousel", Description: "商品轮播"},
		Component{Name: "TrustBadges", Description: "信任徽章"},
		Component{Name: "StickyAddToCart", Description: "悬浮加购"},
	)
}
