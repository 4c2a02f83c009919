package videos

import (
	"creativehands_server/api/middleware"
	"creativehands_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type VideoRoutesManager struct {
	logger       *gecho.Logger
	videoService *services.VideoService
	mw           *middleware.Middleware
}

func NewVideoRoutesManager(
	logger *gecho.Logger,
	videoService *services.VideoService,
	mw *middleware.Middleware,
) *VideoRoutesManager {
	return &VideoRoutesManager{
		logger:       logger,
		videoService: videoService,
		mw:           mw,
	}
}

func (vrm *VideoRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/videos", func(r chi.Router) {
		r.Post("/search", vrm.GetVideos)

		r.Group(func(r chi.Router) {
			r.Use(vrm.mw.RequireAdmin)
			r.Post("/save", vrm.SaveVideo)
			r.Delete("/{id}", vrm.DeleteVideo)
		})
	})
}
