package tables

import "github.com/uptrace/bun"

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	Id           int64   `bun:"id,pk,autoincrement" json:"id"`
	UserName     string  `bun:"user_name,notnull,unique" json:"user_name"`
	PasswordHash string  `bun:"password_hash,notnull" json:"-"`
	FullName     *string `bun:"full_name" json:"full_name,omitempty"`
	IsAdmin      bool    `bun:"is_admin,notnull,default:false" json:"is_admin"`
}
