package tables

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderStatus is the lifecycle position of an order. A cart is an order
// whose status is OrderStatusCart; it becomes a regular order on send.
type OrderStatus int

const (
	OrderStatusCart OrderStatus = iota + 1
	OrderStatusAccepted
	OrderStatusPrepared
	OrderStatusSent
	OrderStatusPaid
	OrderStatusCanceled
	OrderStatusClosed
)

// GuestCustomerId is the reserved placeholder customer attached to carts
// until real customer details arrive at send-time.
const GuestCustomerId int64 = 1

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	Id            int64       `bun:"id,pk,autoincrement" json:"id"`
	UserId        *string     `bun:"user_id" json:"user_id,omitempty"` // anonymous session token; cleared on send
	CustomerId    int64       `bun:"customer_id,notnull" json:"customer_id"`
	StatusId      OrderStatus `bun:"status_id,notnull" json:"status_id"`
	DeliveryPrice float64     `bun:"delivery_price,notnull" json:"delivery_price"`
	CreateDate    time.Time   `bun:"create_date,notnull" json:"create_date"`
	Address       *string     `bun:"address" json:"address,omitempty"`
	Notes         *string     `bun:"notes" json:"notes,omitempty"`
	Discount      float64     `bun:"discount,notnull" json:"discount"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	Id                 int64     `bun:"id,pk,autoincrement" json:"id"`
	OrderId            int64     `bun:"order_id,notnull" json:"order_id"`
	ProductId          int64     `bun:"product_id,notnull" json:"product_id"`
	UnitPrice          float64   `bun:"unit_price,notnull" json:"unit_price"` // price snapshot at add-time
	Quantity           float64   `bun:"quantity,notnull" json:"quantity"`     // fractional amounts allowed
	Note               *string   `bun:"note" json:"note,omitempty"`
	ProductVariationId *int64    `bun:"product_variation_id" json:"product_variation_id,omitempty"`
	ColourId           *string   `bun:"colour_id" json:"colour_id,omitempty"` // legacy single-colour field, superseded by OrderItemColour
	CreateDate         time.Time `bun:"create_date,notnull" json:"create_date"`
}

type OrderItemColour struct {
	bun.BaseModel `bun:"table:order_item_colours,alias:oic"`

	Id          int64  `bun:"id,pk,autoincrement" json:"id"`
	OrderItemId int64  `bun:"order_item_id,notnull" json:"order_item_id"`
	Code        string `bun:"code,notnull" json:"code"`
}

type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	Id      int64   `bun:"id,pk,autoincrement" json:"id"`
	Name    string  `bun:"name,notnull" json:"name"`
	Tel1    string  `bun:"tel1,notnull" json:"tel1"`
	Tel2    *string `bun:"tel2" json:"tel2,omitempty"`
	Address *string `bun:"address" json:"address,omitempty"`
	UserId  *int64  `bun:"user_id" json:"user_id,omitempty"` // link to an account, unrelated to Order.UserId
	Notes   *string `bun:"notes" json:"notes,omitempty"`
	Email   *string `bun:"email" json:"email,omitempty"`
}
