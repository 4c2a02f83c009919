package api

import (
	"creativehands_server/api/auth"
	"creativehands_server/api/health"
	"creativehands_server/api/middleware"
	"creativehands_server/api/orders"
	"creativehands_server/api/products"
	"creativehands_server/api/purchases"
	"creativehands_server/api/uploads"
	"creativehands_server/api/videos"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	orderRoutes    *orders.OrderRoutesManager
	productRoutes  *products.ProductRoutesManager
	purchaseRoutes *purchases.PurchaseRoutesManager
	videoRoutes    *videos.VideoRoutesManager
	uploadRoutes   *uploads.UploadRoutesManager
	authRoutes     *auth.AuthRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		orderRoutes:    orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
		productRoutes:  products.NewProductRoutesManager(logger, sm.ProductService, mw),
		purchaseRoutes: purchases.NewPurchaseRoutesManager(logger, sm.PurchaseService, mw),
		videoRoutes:    videos.NewVideoRoutesManager(logger, sm.VideoService, mw),
		uploadRoutes:   uploads.NewUploadRoutesManager(logger, sm.UploadService, mw),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.orderRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.purchaseRoutes.RegisterRoutes(r)
	rm.videoRoutes.RegisterRoutes(r)
	rm.uploadRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
