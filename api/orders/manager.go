package orders

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		// storefront flows
		r.Get("/cart", orm.GetCart)
		r.Post("/order", orm.GetOrder)
		r.Post("/add-to-cart", orm.AddToCart)
		r.Post("/send", orm.SendOrder)
		r.Post("/migrate-cart", orm.MigrateCart)

		// back-office flows
		r.Group(func(r chi.Router) {
			r.Use(orm.mw.RequireAdmin)
			r.Post("/search", orm.GetOrders)
			r.Post("/save", orm.SaveOrder)
			r.Post("/items", orm.SaveOrderItem)
			r.Delete("/items/{id}", orm.DeleteOrderItem)
			r.Post("/change-status", orm.ChangeOrderStatus)
			r.Post("/change-status-by-id", orm.ChangeOrderStatusById)
		})
	})
}
