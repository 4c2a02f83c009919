package middleware

import (
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg    *structs.Config
	logger *gecho.Logger
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger) *Middleware {
	return &Middleware{
		cfg:    cfg,
		logger: logger,
	}
}
