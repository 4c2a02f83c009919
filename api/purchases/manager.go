package purchases

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type PurchaseRoutesManager struct {
	logger          *gecho.Logger
	purchaseService *services.PurchaseService
	mw              *middleware.Middleware
}

func NewPurchaseRoutesManager(
	logger *gecho.Logger,
	purchaseService *services.PurchaseService,
	mw *middleware.Middleware,
) *PurchaseRoutesManager {
	return &PurchaseRoutesManager{
		logger:          logger,
		purchaseService: purchaseService,
		mw:              mw,
	}
}

// Purchase bookkeeping is back-office only.
func (prm *PurchaseRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(prm.mw.RequireAdmin)

		r.Route("/purchases", func(r chi.Router) {
			r.Post("/search", prm.GetPurchases)
			r.Get("/{id}", prm.GetPurchaseById)
			r.Post("/", prm.SavePurchase)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", prm.GetProviders)
			r.Get("/{id}", prm.GetProviderById)
			r.Post("/", prm.SaveProvider)
			r.Delete("/{id}", prm.DeleteProvider)
		})
	})
}
