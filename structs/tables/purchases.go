package tables

import (
	"time"

	"github.com/uptrace/bun"
)

type Provider struct {
	bun.BaseModel `bun:"table:providers,alias:prov"`

	Id          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	IdN         *string `bun:"idn" json:"idn,omitempty"` // fiscal/registration number
	Address     *string `bun:"address" json:"address,omitempty"`
	Tel1        *string `bun:"tel1" json:"tel1,omitempty"`
	Tel2        *string `bun:"tel2" json:"tel2,omitempty"`
	Email       *string `bun:"email" json:"email,omitempty"`
	Description *string `bun:"description" json:"description,omitempty"`
	WebSite     *string `bun:"website" json:"website,omitempty"`
	IsActive    bool    `bun:"is_active,notnull" json:"is_active"`
}

type Purchase struct {
	bun.BaseModel `bun:"table:purchases,alias:pur"`

	Id           int64     `bun:"id,pk,autoincrement" json:"id"`
	ProviderId   int64     `bun:"provider_id,notnull" json:"provider_id"`
	Date         time.Time `bun:"date,notnull" json:"date"`
	Amount       float64   `bun:"amount,notnull" json:"amount"`
	Description  *string   `bun:"description" json:"description,omitempty"`
	PurchaseLink *string   `bun:"purchase_link" json:"purchase_link,omitempty"`
}

type PurchaseImage struct {
	bun.BaseModel `bun:"table:purchase_images,alias:pim"`

	Id         int64  `bun:"id,pk,autoincrement" json:"id"`
	PurchaseId int64  `bun:"purchase_id,notnull" json:"purchase_id"`
	Extension  string `bun:"extension,notnull" json:"extension"`
}
