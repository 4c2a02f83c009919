package auth

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger      *gecho.Logger
	authService *services.AuthService
	mw          *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:      logger,
		authService: authService,
		mw:          mw,
	}
}

func (ar *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", ar.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(ar.mw.RequireAdmin)
		r.Post("/auth/register", ar.HandleRegister)
	})
}
