package shopify

// Product Admin API 商品
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	BodyHTML    *string   `json:"body_html"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Handle      string    `json:"handle"`
	Status      string    `json:"status"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
}

// Variant Admin API 商品规格
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	SKU               *string `json:"sku"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Image Admin API 商品图片
type Image struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Src       string  `json:"src"`
	Alt       *string `json:"alt"`
}

// Shop 店铺信息
type Shop struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Domain          string `json:"domain"`
	MyshopifyDomain string `json:"myshopify_domain"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

type productResponse struct {
	Product Product `json:"product"`
}

type shopResponse struct {
	Shop Shop `json:"shop"`
}
