package structs

import "creativehands_server/structs/tables"

// GetProductsRequest filters are ANDed; zero values mean "no filter".
type GetProductsRequest struct {
	Id            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Barcode       string `json:"barcode"`
	CategoryId    int64  `json:"category_id"`
	SubCategoryId int64  `json:"sub_category_id"` // takes priority over CategoryId when set
	Skip          int    `json:"skip"`
	Limit         int    `json:"limit"`
}

type ProductVariationIn struct {
	Id          int64    `json:"id"` // 0 means insert
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// SaveProductRequest upserts a product and reconciles its related sets
// (categories, available colours, variations, images) in one call.
type SaveProductRequest struct {
	Id                int64                `json:"id"` // 0 means insert
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Barcode           *string              `json:"barcode,omitempty"`
	Price             float64              `json:"price"`
	SalePrice         *float64             `json:"sale_price,omitempty"`
	StockQuantity     int                  `json:"stock_quantity"`
	Categories        []int64              `json:"categories,omitempty"`
	AvailableColours  []string             `json:"available_colours,omitempty"`
	ProductVariations []ProductVariationIn `json:"product_variations,omitempty"`
	Images            []string             `json:"images,omitempty"`          // kept filenames, "<id>.<ext>"
	UploadedImages    []string             `json:"uploaded_images,omitempty"` // filenames added in this edit session
}

// Product is the catalog view with related records attached.
type Product struct {
	tables.Product
	Images            []tables.Image                  `json:"images,omitempty"`
	Categories        []tables.Category               `json:"categories,omitempty"`
	ProductVariations []tables.ProductVariation       `json:"product_variations,omitempty"`
	AvailableColours  []tables.ProductAvailableColour `json:"available_colours,omitempty"`
}
