package tables

import "github.com/uptrace/bun"

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	Id            int64    `bun:"id,pk,autoincrement" json:"id"`
	Name          string   `bun:"name,notnull" json:"name"`
	Price         float64  `bun:"price,notnull" json:"price"`
	SalePrice     *float64 `bun:"sale_price" json:"sale_price,omitempty"`
	Barcode       *string  `bun:"barcode" json:"barcode,omitempty"`
	Description   string   `bun:"description,notnull,default:''" json:"description"`
	StockQuantity int      `bun:"stock_quantity,notnull,default:0" json:"stock_quantity"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	Id   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
}

// ProductCategory links a product to a category; a product may appear in
// several categories.
type ProductCategory struct {
	bun.BaseModel `bun:"table:product_categories,alias:pc"`

	Id         int64 `bun:"id,pk,autoincrement" json:"id"`
	ProductId  int64 `bun:"product_id,notnull" json:"product_id"`
	CategoryId int64 `bun:"category_id,notnull" json:"category_id"`
}

type ProductVariation struct {
	bun.BaseModel `bun:"table:product_variations,alias:pv"`

	Id          int64    `bun:"id,pk,autoincrement" json:"id"`
	ProductId   int64    `bun:"product_id,notnull" json:"product_id"`
	Price       *float64 `bun:"price" json:"price,omitempty"`
	Description *string  `bun:"description" json:"description,omitempty"`
}

// ProductAvailableColour is one colour code a product can be ordered in.
// Codes form a set per product.
type ProductAvailableColour struct {
	bun.BaseModel `bun:"table:product_available_colours,alias:pac"`

	Id        int64  `bun:"id,pk,autoincrement" json:"id"`
	ProductId int64  `bun:"product_id,notnull" json:"product_id"`
	Code      string `bun:"code,notnull" json:"code"`
}

// Image is a product image stored on the remote file store; the persisted
// filename is "<Id>.<Extension>".
type Image struct {
	bun.BaseModel `bun:"table:images,alias:img"`

	Id        int64  `bun:"id,pk,autoincrement" json:"id"`
	ProductId int64  `bun:"product_id,notnull" json:"product_id"`
	Extension string `bun:"extension,notnull" json:"extension"`
}
