package shopify

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/datatypes"
)

const myshopifySuffix = ".myshopify.com"

var (
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	shopDomain = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
)

// NormalizeShop 小写、去空白，缺少 .myshopify.com 时补齐。
// 结果必须是单级 myshopify 子域名，否则返回空串。
func NormalizeShop(shop string) string {
	domain := strings.ToLower(strings.TrimSpace(shop))
	if domain == "" {
		return ""
	}
	if !strings.HasSuffix(domain, myshopifySuffix) {
		domain += myshopifySuffix
	}
	if !shopDomain.MatchString(domain) {
		return ""
	}
	return domain
}

// CheckoutURL 购物车直达链接
func CheckoutURL(shop, variantID string, quantity int) string {
	if quantity < 1 {
		quantity = 1
	}
	store := strings.Replace(shop, myshopifySuffix, "", 1)
	return fmt.Sprintf("https://%s%s/cart/%s:%d", store, myshopifySuffix, url.PathEscape(variantID), quantity)
}

// ProductURL 店铺商品页链接
func ProductURL(shop, handle string) string {
	store := strings.Replace(shop, myshopifySuffix, "", 1)
	return fmt.Sprintf("https://%s%s/products/%s", store, myshopifySuffix, handle)
}

// StripHTML 去掉标签并还原常见实体
func StripHTML(html string) string {
	text := htmlTag.ReplaceAllString(html, "")
	return strings.TrimSpace(entityReplacer.Replace(text))
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// TransformProduct 转换为本地商品，价格取第一个规格
func TransformProduct(p Product) model.Product {
	product := model.Product{
		ShopifyID: strconv.FormatInt(p.ID, 10),
		Title:     p.Title,
	}
	if p.BodyHTML != nil && *p.BodyHTML != "" {
		desc := StripHTML(*p.BodyHTML)
		product.Description = &desc
	}
	if len(p.Variants) > 0 {
		primary := p.Variants[0]
		product.Price = parsePrice(primary.Price)
		if primary.CompareAtPrice != nil && *primary.CompareAtPrice != "" {
			compare := parsePrice(*primary.CompareAtPrice)
			product.ComparePrice = &compare
		}
	}

	images := make([]model.ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		alt := p.Title
		if img.Alt != nil && *img.Alt != "" {
			alt = *img.Alt
		}
		images = append(images, model.ProductImage{Src: img.Src, Alt: alt})
	}
	product.Images = datatypes.NewJSONType(images)

	variants := make([]model.ProductVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, model.ProductVariant{
			ID:           strconv.FormatInt(v.ID, 10),
			Title:        v.Title,
			Price:        v.Price,
			ComparePrice: v.CompareAtPrice,
			SKU:          v.SKU,
			Inventory:    v.InventoryQuantity,
		})
	}
	product.Variants = datatypes.NewJSONType(variants)
	return product
}
