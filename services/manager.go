package services

import (
	"creativehands_server/database"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	EmailService    *EmailService
	CacheService    *CacheService
	HealthService   *HealthService
	FtpService      *FtpService
	ProductService  *ProductService
	OrderService    *OrderService
	PurchaseService *PurchaseService
	VideoService    *VideoService
	UploadService   *UploadService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	authService := NewAuthService(cfg, logger, db)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db)
	ftpService := NewFtpService(logger, cfg.Ftp)
	productService := NewProductService(logger, cfg, db, cacheService)
	orderService := NewOrderService(logger, cfg, db, emailService)
	purchaseService := NewPurchaseService(logger, cfg, db)
	videoService := NewVideoService(logger, cfg, db, ftpService)
	uploadService := NewUploadService(logger, cfg, db, ftpService)

	return &ServiceManager{
		AuthService:     authService,
		EmailService:    emailService,
		CacheService:    cacheService,
		HealthService:   healthService,
		FtpService:      ftpService,
		ProductService:  productService,
		OrderService:    orderService,
		PurchaseService: purchaseService,
		VideoService:    videoService,
		UploadService:   uploadService,
	}
}
