package products

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/search", prm.GetProducts)
		r.Get("/categories", prm.GetCategories)
		r.Get("/product-categories", prm.GetProductCategories)
		r.Get("/images", prm.GetImages)
		r.Get("/variations", prm.GetProductVariations)
		r.Get("/colours", prm.GetAvailableColours)
		r.Get("/{id}", prm.GetProductById)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.RequireAdmin)
			r.Post("/save", prm.SaveProduct)
			r.Delete("/{id}", prm.DeleteProduct)
		})
	})
}
