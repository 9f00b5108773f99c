package render

import (
	"sort"

	"github.com/weibaohui/landingkit/internal/model"
	"k8s.io/klog/v2"
)

// ProductKey 注入到每个区块 props 的商品上下文键名
const ProductKey = "product"

// ProductContext 页面共享的商品上下文
type ProductContext struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Price        float64              `json:"price"`
	ComparePrice *float64             `json:"comparePrice"`
	Images       []model.ProductImage `json:"images"`
	CheckoutURL  *string              `json:"checkoutUrl"`
}

// NewProductContext 由已同步商品构建上下文，checkoutURL 为空表示无法结账
func NewProductContext(product *model.Product, checkoutURL string) *ProductContext {
	if product == nil {
		return nil
	}
	images := product.Images.Data()
	if images == nil {
		images = []model.ProductImage{}
	}
	pc := &ProductContext{
		ID:           product.ID,
		Title:        product.Title,
		Price:        product.Price,
		ComparePrice: product.ComparePrice,
		Images:       images,
	}
	if checkoutURL != "" {
		pc.CheckoutURL = &checkoutURL
	}
	return pc
}

// Entry 一个可渲染的区块
type Entry struct {
	SectionID string         `json:"sectionId"`
	Component Component      `json:"component"`
	Props     map[string]any `json:"props"`
}

// Renderer 模板区块渲染器，无状态，可并发使用
type Renderer struct {
	registry Registry
}

// NewRenderer 创建渲染器
func NewRenderer(registry Registry) *Renderer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Renderer{registry: registry}
}

// Render 按 order 排序区块，合并默认内容与项目覆盖内容，并注入商品上下文。
// 模板为空时返回空列表；组件未注册的区块被跳过并记录告警。
func (r *Renderer) Render(tpl *model.Template, content model.ProjectContent, product *ProductContext) []Entry {
	entries := []Entry{}
	if tpl == nil {
		return entries
	}

	for _, section := range SortSections(tpl.SectionList()) {
		component, ok := r.registry.Lookup(section.Component)
		if !ok {
			klog.Warningf("[Renderer] 组件未注册，跳过区块: template=%s, section=%s, component=%s", tpl.ID, section.ID, section.Component)
			continue
		}

		props := mergeShallow(section.DefaultContent, content[section.ID])
		if product != nil {
			props[ProductKey] = product
		} else {
			props[ProductKey] = nil
		}

		entries = append(entries, Entry{
			SectionID: section.ID,
			Component: component,
			Props:     props,
		})
	}

	klog.V(6).Infof("[Renderer] 渲染完成: template=%s, sections=%d, rendered=%d", tpl.ID, len(tpl.SectionList()), len(entries))
	return entries
}

// RenderProject 渲染项目关联的模板，未关联模板时返回空列表
func (r *Renderer) RenderProject(project *model.Project, product *ProductContext) []Entry {
	if project == nil {
		return []Entry{}
	}
	return r.Render(project.Template, project.Content.Data(), product)
}

// SortSections 返回按 order 升序的稳定排序副本
func SortSections(sections []model.Section) []model.Section {
	sorted := make([]model.Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}
