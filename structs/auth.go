package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Name string    `json:"name"`
	Role string    `json:"role"`
	Iat  time.Time `json:"iat"`
	Exp  time.Time `json:"exp"`
	Jti  uuid.UUID `json:"jti"`
}

type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type LoginUser struct {
	Id       int64   `json:"id"`
	UserName string  `json:"user_name"`
	FullName *string `json:"full_name,omitempty"`
	IsAdmin  bool    `json:"is_admin"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type RegisterRequest struct {
	UserName string  `json:"user_name"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	IsAdmin  bool    `json:"is_admin"`
}
