package tables

import "github.com/uptrace/bun"

type Video struct {
	bun.BaseModel `bun:"table:videos,alias:v"`

	Id          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"` // stored filename stem, without extension
	Extension   string  `bun:"extension,notnull" json:"extension"`
	Title       *string `bun:"title" json:"title,omitempty"`
	Description *string `bun:"description" json:"description,omitempty"`
}
