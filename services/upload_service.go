package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"creativehands_server/database"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	productImageFolder  = "Images"
	purchaseImageFolder = "Images/Purchases"
	galleryImageFolder  = "Images/Gallery"
)

// UploadService moves client uploads onto the remote file store and keeps
// the image rows that name them in sync.
type UploadService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	ftp    FtpClient
}

func NewUploadService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, ftp FtpClient) *UploadService {
	return &UploadService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		ftp:    ftp,
	}
}

func invalidUploadResponse() *structs.UploadFilesResponse {
	return &structs.UploadFilesResponse{
		VideoId:    -1,
		ProductId:  -1,
		PurchaseId: -1,
	}
}

// UploadProductFile stores one product image. A non-positive productId
// creates a blank product first, so the caller learns the new id from
// the response. The stored filename is the image row id plus the
// upload's extension.
func (us *UploadService) UploadProductFile(ctx context.Context, file *structs.UploadFile, productId int64) (*structs.UploadFilesResponse, error) {
	if file == nil {
		return invalidUploadResponse(), nil
	}

	resp := &structs.UploadFilesResponse{
		ProductId:      productId,
		UploadedImages: []string{},
	}

	if productId <= 0 {
		product := &tables.Product{Name: "", Price: 0}
		created, err := database.Query[tables.Product](us.db).Insert(ctx, product)
		if err != nil {
			us.logger.Error("Failed to create placeholder product", gecho.Field("error", err))
			return nil, err
		}
		productId = created.Id
		resp.ProductId = productId
	}

	extWithDot := path.Ext(file.Name)
	img := &tables.Image{
		ProductId: productId,
		Extension: strings.TrimPrefix(extWithDot, "."),
	}
	created, err := database.Query[tables.Image](us.db).Insert(ctx, img)
	if err != nil {
		us.logger.Error("Failed to create image row",
			gecho.Field("productId", productId),
			gecho.Field("error", err))
		return nil, err
	}

	storedName := fmt.Sprintf("%d%s", created.Id, extWithDot)
	if upErr := us.ftp.Upload(productImageFolder, storedName, file.Data); upErr != nil {
		us.logger.Warn("Product image upload failed",
			gecho.Field("name", storedName),
			gecho.Field("error", upErr))
	} else {
		resp.UploadedImages = append(resp.UploadedImages, storedName)
	}
	return resp, nil
}

// UploadPurchaseFile stores the receipt image for a purchase. Each
// purchase keeps a single image row; re-uploads reuse it, so the stored
// filename stays stable.
func (us *UploadService) UploadPurchaseFile(ctx context.Context, file *structs.UploadFile, purchaseId int64) (*structs.UploadFilesResponse, error) {
	if file == nil || purchaseId <= 0 {
		return invalidUploadResponse(), nil
	}

	resp := &structs.UploadFilesResponse{
		PurchaseId:     purchaseId,
		UploadedImages: []string{},
	}

	extWithDot := path.Ext(file.Name)
	row, err := database.Query[tables.PurchaseImage](us.db).
		Where("purchase_id", purchaseId).
		First(ctx)
	if err != nil {
		us.logger.Error("Failed to load purchase image row",
			gecho.Field("purchaseId", purchaseId),
			gecho.Field("error", err))
		return nil, err
	}
	if row == nil {
		row = &tables.PurchaseImage{
			PurchaseId: purchaseId,
			Extension:  strings.TrimPrefix(extWithDot, "."),
		}
		if row, err = database.Query[tables.PurchaseImage](us.db).Insert(ctx, row); err != nil {
			us.logger.Error("Failed to create purchase image row",
				gecho.Field("purchaseId", purchaseId),
				gecho.Field("error", err))
			return nil, err
		}
	}

	storedName := fmt.Sprintf("%d%s", row.Id, extWithDot)
	if upErr := us.ftp.Upload(purchaseImageFolder, storedName, file.Data); upErr != nil {
		us.logger.Warn("Purchase image upload failed",
			gecho.Field("name", storedName),
			gecho.Field("error", upErr))
	} else {
		resp.UploadedImages = append(resp.UploadedImages, storedName)
	}
	return resp, nil
}

// UploadGalleryFiles replaces the gallery set for a product: existing
// "prod_<id>_" files are removed from the store, then the new batch is
// uploaded under sequential names. Gallery files have no database rows.
func (us *UploadService) UploadGalleryFiles(ctx context.Context, files []structs.UploadFile, productId int64) (*structs.UploadFilesResponse, error) {
	resp := &structs.UploadFilesResponse{
		ProductId:      productId,
		UploadedImages: []string{},
	}
	if len(files) == 0 {
		return resp, nil
	}

	prefix := fmt.Sprintf("prod_%d_", productId)
	existing, err := us.ftp.ListWithPrefix(galleryImageFolder, prefix)
	if err != nil {
		us.logger.Warn("Failed to list gallery files",
			gecho.Field("productId", productId),
			gecho.Field("error", err))
	}
	if len(existing) > 0 {
		if failed, err := us.ftp.Delete(galleryImageFolder, existing); err != nil || len(failed) > 0 {
			us.logger.Warn("Failed to clear gallery files",
				gecho.Field("productId", productId),
				gecho.Field("failed", failed),
				gecho.Field("error", err))
		}
	}

	for i, file := range files {
		storedName := fmt.Sprintf("prod_%d_%d%s", productId, i+1, path.Ext(file.Name))
		if upErr := us.ftp.Upload(galleryImageFolder, storedName, file.Data); upErr != nil {
			us.logger.Warn("Gallery file upload failed",
				gecho.Field("name", storedName),
				gecho.Field("error", upErr))
			continue
		}
		resp.UploadedImages = append(resp.UploadedImages, storedName)
	}
	return resp, nil
}
