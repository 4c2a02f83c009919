package structs

import (
	"time"

	"creativehands_server/structs/tables"
)

// Order is the aggregate view returned to the API layer: the order row
// plus its customer and line items.
type Order struct {
	Id            int64              `json:"id"`
	UserId        *string            `json:"user_id,omitempty"`
	CustomerId    int64              `json:"customer_id"`
	StatusId      tables.OrderStatus `json:"status_id"`
	DeliveryPrice float64            `json:"delivery_price"`
	CreateDate    time.Time          `json:"create_date"`
	Address       *string            `json:"address,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Discount      float64            `json:"discount"`
	Customer      *tables.Customer   `json:"customer,omitempty"`
	OrderItems    []OrderItem        `json:"order_items"`
}

// OrderItem is one line of an order. Colours carries the colour-code set
// for the line; nil means "not provided" which write paths treat as
// "leave persisted colours untouched", while an empty non-nil slice
// clears them. JSON decoding preserves the distinction (absent field vs
// empty array).
type OrderItem struct {
	Id                 int64    `json:"id"`
	OrderId            int64    `json:"order_id"`
	ProductId          int64    `json:"product_id"`
	UnitPrice          float64  `json:"unit_price"`
	Quantity           float64  `json:"quantity"`
	Note               *string  `json:"note,omitempty"`
	ProductVariationId *int64   `json:"product_variation_id,omitempty"`
	Colours            []string `json:"colours,omitempty"`
}

// GetOrdersRequest is an OR-combined search: an order matches when any
// present criterion matches. Absent (nil) criteria contribute no matches;
// a request with every field nil matches nothing.
type GetOrdersRequest struct {
	OrderId      *int64              `json:"order_id,omitempty"`
	CustomerId   *int64              `json:"customer_id,omitempty"`
	CustomerName *string             `json:"customer_name,omitempty"`
	CustomerTel  *string             `json:"customer_tel,omitempty"`
	StatusId     *tables.OrderStatus `json:"status_id,omitempty"`
}

type AddToCartRequest struct {
	UserId             string   `json:"user_id"` // empty matches any open cart
	ProductId          int64    `json:"product_id"`
	ProductVariationId *int64   `json:"product_variation_id,omitempty"`
	Quantity           float64  `json:"quantity"`
	ProductPrice       float64  `json:"product_price"`
	ProductSalePrice   float64  `json:"product_sale_price"`
	ProductUnitPrice   float64  `json:"product_unit_price"`
	Note               string   `json:"note"`
	OrderItemColours   []string `json:"order_item_colours,omitempty"`
}

type SaveOrderItemRequest struct {
	Id        int64    `json:"id"`
	OrderId   int64    `json:"order_id"`
	ProductId int64    `json:"product_id"`
	UnitPrice float64  `json:"unit_price"`
	Quantity  float64  `json:"quantity"`
	Note      *string  `json:"note,omitempty"`
	Colours   []string `json:"colours,omitempty"`
}

type ChangeOrderStatusRequest struct {
	Id       int64              `json:"id"`
	StatusId tables.OrderStatus `json:"status_id"`
}

type SendOrderRequest struct {
	OrderId       int64   `json:"order_id"`
	UserId        string  `json:"user_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerTel   string  `json:"customer_tel"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	Address       string  `json:"address"`
	Notes         *string `json:"notes,omitempty"`
}

type MigrateCartRequest struct {
	CartToken string `json:"cart_token"`
	UserId    string `json:"user_id"`
}
