package health

import (
	"creativehands_server/services"

	"github.com/go-chi/chi/v5"
)

type HealthRoutesManager struct {
	healthService *services.HealthService
}

func NewHealthRoutesManager(healthService *services.HealthService) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health", hrm.GetServerHealth)
	r.Get("/health/db", hrm.GetDatabaseHealth)
}
