package uploads

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type UploadRoutesManager struct {
	logger        *gecho.Logger
	uploadService *services.UploadService
	mw            *middleware.Middleware
}

func NewUploadRoutesManager(
	logger *gecho.Logger,
	uploadService *services.UploadService,
	mw *middleware.Middleware,
) *UploadRoutesManager {
	return &UploadRoutesManager{
		logger:        logger,
		uploadService: uploadService,
		mw:            mw,
	}
}

func (urm *UploadRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/uploads", func(r chi.Router) {
		r.Use(urm.mw.RequireAdmin)

		r.Post("/products", urm.UploadProductFile)
		r.Post("/purchases", urm.UploadPurchaseFile)
		r.Post("/gallery", urm.UploadGalleryFiles)
	})
}
