package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"creativehands_server/database"
	"creativehands_server/lib"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const maxProductPageSize = 5000

// ProductService serves the catalog: filtered product search, the full
// product aggregate, and the save/delete flows that reconcile related
// sets (categories, colours, variations, images).
type ProductService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// GetProducts runs the AND-combined catalog search. String filters are
// case-insensitive substring matches; a category filter requires a link
// row to exist. Results are ordered by id with skip/limit pagination.
func (ps *ProductService) GetProducts(ctx context.Context, req *structs.GetProductsRequest) ([]tables.Product, error) {
	query := ps.db.NewSelect().Model((*tables.Product)(nil))

	if req.Id > 0 {
		query = query.Where("id = ?", req.Id)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(desc)+"%")
	}
	if barcode := strings.TrimSpace(req.Barcode); barcode != "" {
		query = query.Where("LOWER(barcode) LIKE ?", "%"+strings.ToLower(barcode)+"%")
	}

	// sub-category takes priority over category
	categoryId := req.CategoryId
	if req.SubCategoryId > 0 {
		categoryId = req.SubCategoryId
	}
	if categoryId > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_categories AS pc WHERE pc.product_id = p.id AND pc.category_id = ?)",
			categoryId,
		)
	}

	skip := req.Skip
	if skip < 0 {
		skip = 0
	}
	limit := req.Limit
	if limit <= 0 || limit > maxProductPageSize {
		limit = maxProductPageSize
	}

	var rows []tables.Product
	err := query.OrderExpr("id").Offset(skip).Limit(limit).Scan(ctx, &rows)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// GetProductById returns the full product aggregate, served from the
// cache when possible. Returns nil when the product does not exist.
func (ps *ProductService) GetProductById(ctx context.Context, productId int64) (*structs.Product, error) {
	if ps.cacheService != nil {
		if cached, err := ps.cacheService.GetProduct(productId); err == nil && cached != nil {
			return cached, nil
		}
	}

	row, err := database.Query[tables.Product](ps.db).Where("id", productId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row == nil {
		return nil, nil
	}

	product := &structs.Product{Product: *row}

	product.Images, err = database.Query[tables.Image](ps.db).
		Where("product_id", productId).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	product.ProductVariations, err = database.Query[tables.ProductVariation](ps.db).
		Where("product_id", productId).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	product.AvailableColours, err = database.Query[tables.ProductAvailableColour](ps.db).
		Where("product_id", productId).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	err = ps.db.NewSelect().Model(&product.Categories).
		Where("id IN (SELECT category_id FROM product_categories WHERE product_id = ?)", productId).
		OrderExpr("id").
		Scan(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	if ps.cacheService != nil {
		if cacheErr := ps.cacheService.SetProduct(product); cacheErr != nil {
			ps.logger.Warn("Failed to cache product",
				gecho.Field("product_id", productId),
				gecho.Field("error", cacheErr))
		}
	}

	return product, nil
}

// SaveProduct upserts the product row, then reconciles categories,
// available colours, variations and images inside one transaction.
// Returns 0 when an explicit id does not resolve.
func (ps *ProductService) SaveProduct(ctx context.Context, req *structs.SaveProductRequest) (productId int64, err error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			ps.logger.Error(fmt.Sprintf("panic in SaveProduct: %v", p))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if req.Id > 0 {
		var existing tables.Product
		err = tx.NewSelect().Model(&existing).Where("id = ?", req.Id).Limit(1).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			return 0, nil
		}
		if err != nil {
			return 0, lib.MapPgError(err)
		}

		_, err = tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("name = ?", req.Name).
			Set("price = ?", req.Price).
			Set("sale_price = ?", req.SalePrice).
			Set("barcode = ?", req.Barcode).
			Set("description = ?", req.Description).
			Set("stock_quantity = ?", req.StockQuantity).
			Where("id = ?", req.Id).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
		productId = req.Id
	} else {
		product := &tables.Product{
			Name:          req.Name,
			Price:         req.Price,
			SalePrice:     req.SalePrice,
			Barcode:       req.Barcode,
			Description:   req.Description,
			StockQuantity: req.StockQuantity,
		}
		if _, err = tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return 0, lib.MapPgError(err)
		}
		productId = product.Id
	}

	if err = ps.syncProductCategories(ctx, tx, productId, req.Categories); err != nil {
		return 0, err
	}
	if err = ps.syncAvailableColours(ctx, tx, productId, req.AvailableColours); err != nil {
		return 0, err
	}
	if err = ps.syncProductVariations(ctx, tx, productId, req.ProductVariations); err != nil {
		return 0, err
	}
	if err = ps.syncProductImages(ctx, tx, productId, req.Images, req.UploadedImages); err != nil {
		return 0, err
	}

	if ps.cacheService != nil {
		if cacheErr := ps.cacheService.InvalidateProduct(productId); cacheErr != nil {
			ps.logger.Warn("Failed to invalidate product cache",
				gecho.Field("product_id", productId),
				gecho.Field("error", cacheErr))
		}
	}

	ps.logger.Info("Product saved", gecho.Field("product_id", productId))

	return productId, nil
}

// syncProductCategories reconciles the category link set for a product.
func (ps *ProductService) syncProductCategories(ctx context.Context, tx bun.Tx, productId int64, categoryIds []int64) error {
	desired := make(map[int64]bool)
	for _, cid := range categoryIds {
		if cid > 0 {
			desired[cid] = true
		}
	}

	var existing []tables.ProductCategory
	if err := tx.NewSelect().Model(&existing).Where("product_id = ?", productId).Scan(ctx); err != nil {
		return lib.MapPgError(err)
	}
	existingSet := make(map[int64]bool, len(existing))
	for _, pc := range existing {
		existingSet[pc.CategoryId] = true
	}

	for cid := range desired {
		if !existingSet[cid] {
			row := &tables.ProductCategory{ProductId: productId, CategoryId: cid}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}
	}

	toDelete := make([]int64, 0)
	for cid := range existingSet {
		if !desired[cid] {
			toDelete = append(toDelete, cid)
		}
	}
	if len(toDelete) > 0 {
		_, err := tx.NewDelete().
			Model((*tables.ProductCategory)(nil)).
			Where("product_id = ?", productId).
			Where("category_id IN (?)", bun.In(toDelete)).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
	}
	return nil
}

// syncAvailableColours reconciles the colour-code set for a product.
func (ps *ProductService) syncAvailableColours(ctx context.Context, tx bun.Tx, productId int64, codes []string) error {
	desired := make(map[string]bool)
	for _, code := range codes {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			desired[trimmed] = true
		}
	}

	var existing []tables.ProductAvailableColour
	if err := tx.NewSelect().Model(&existing).Where("product_id = ?", productId).Scan(ctx); err != nil {
		return lib.MapPgError(err)
	}
	existingSet := make(map[string]bool, len(existing))
	for _, row := range existing {
		existingSet[row.Code] = true
	}

	for code := range desired {
		if !existingSet[code] {
			row := &tables.ProductAvailableColour{ProductId: productId, Code: code}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}
	}

	toDelete := make([]string, 0)
	for code := range existingSet {
		if !desired[code] {
			toDelete = append(toDelete, code)
		}
	}
	if len(toDelete) > 0 {
		_, err := tx.NewDelete().
			Model((*tables.ProductAvailableColour)(nil)).
			Where("product_id = ?", productId).
			Where("code IN (?)", bun.In(toDelete)).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
	}
	return nil
}

// syncProductVariations upserts variations by id, inserts the id-less
// ones, and prunes persisted variations missing from the payload.
func (ps *ProductService) syncProductVariations(ctx context.Context, tx bun.Tx, productId int64, variations []structs.ProductVariationIn) error {
	incomingById := make(map[int64]structs.ProductVariationIn)
	for _, v := range variations {
		if v.Id > 0 {
			incomingById[v.Id] = v
		}
	}

	var existing []tables.ProductVariation
	if err := tx.NewSelect().Model(&existing).Where("product_id = ?", productId).Scan(ctx); err != nil {
		return lib.MapPgError(err)
	}

	for _, ev := range existing {
		v, found := incomingById[ev.Id]
		if !found {
			continue
		}
		update := tx.NewUpdate().
			Model((*tables.ProductVariation)(nil)).
			Set("description = ?", v.Description).
			Where("id = ?", ev.Id)
		if v.Price != nil {
			update = update.Set("price = ?", v.Price)
		}
		if _, err := update.Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
	}

	for _, v := range variations {
		if v.Id > 0 {
			continue
		}
		row := &tables.ProductVariation{
			ProductId:   productId,
			Price:       v.Price,
			Description: v.Description,
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}
	}

	toDelete := make([]int64, 0)
	for _, ev := range existing {
		if _, found := incomingById[ev.Id]; !found {
			toDelete = append(toDelete, ev.Id)
		}
	}
	if len(toDelete) > 0 {
		_, err := tx.NewDelete().
			Model((*tables.ProductVariation)(nil)).
			Where("product_id = ?", productId).
			Where("id IN (?)", bun.In(toDelete)).
			Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}
	}
	return nil
}

// syncProductImages prunes image rows not referenced by the kept or
// freshly uploaded filenames. When both lists are empty nothing happens
// (current images are preserved).
func (ps *ProductService) syncProductImages(ctx context.Context, tx bun.Tx, productId int64, images, uploadedImages []string) error {
	keepIds := append(lib.ParseImageIDs(images), lib.ParseImageIDs(uploadedImages)...)
	if len(keepIds) == 0 {
		return nil
	}

	_, err := tx.NewDelete().
		Model((*tables.Image)(nil)).
		Where("product_id = ?", productId).
		Where("id NOT IN (?)", bun.In(keepIds)).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// DeleteProduct removes a product and its related rows. Returns false
// when the product does not exist and ErrConflict when order lines still
// reference it.
func (ps *ProductService) DeleteProduct(ctx context.Context, productId int64) (ok bool, err error) {
	existing, err := database.Query[tables.Product](ps.db).Where("id", productId).First(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	if existing == nil {
		return false, nil
	}

	refs, err := database.Query[tables.OrderItem](ps.db).Where("product_id", productId).Count(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	if refs > 0 {
		return false, lib.ErrConflict
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			ps.logger.Error(fmt.Sprintf("panic in DeleteProduct: %v", p))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// children first, then the product row
	for _, del := range []*bun.DeleteQuery{
		tx.NewDelete().Model((*tables.Image)(nil)).Where("product_id = ?", productId),
		tx.NewDelete().Model((*tables.ProductVariation)(nil)).Where("product_id = ?", productId),
		tx.NewDelete().Model((*tables.ProductAvailableColour)(nil)).Where("product_id = ?", productId),
		tx.NewDelete().Model((*tables.ProductCategory)(nil)).Where("product_id = ?", productId),
		tx.NewDelete().Model((*tables.Product)(nil)).Where("id = ?", productId),
	} {
		if _, err = del.Exec(ctx); err != nil {
			return false, lib.MapPgError(err)
		}
	}

	if ps.cacheService != nil {
		if cacheErr := ps.cacheService.InvalidateProduct(productId); cacheErr != nil {
			ps.logger.Warn("Failed to invalidate product cache",
				gecho.Field("product_id", productId),
				gecho.Field("error", cacheErr))
		}
	}

	ps.logger.Info("Product deleted", gecho.Field("product_id", productId))

	return true, nil
}

// GetCategories lists all categories ordered by id.
func (ps *ProductService) GetCategories(ctx context.Context) ([]tables.Category, error) {
	rows, err := database.Query[tables.Category](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// GetProductCategories lists all product/category links ordered by id.
func (ps *ProductService) GetProductCategories(ctx context.Context) ([]tables.ProductCategory, error) {
	rows, err := database.Query[tables.ProductCategory](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// GetImages lists all product image rows ordered by id.
func (ps *ProductService) GetImages(ctx context.Context) ([]tables.Image, error) {
	rows, err := database.Query[tables.Image](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// GetProductVariations lists all variations ordered by id.
func (ps *ProductService) GetProductVariations(ctx context.Context) ([]tables.ProductVariation, error) {
	rows, err := database.Query[tables.ProductVariation](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}

// GetAvailableColours lists all product colour codes ordered by id.
func (ps *ProductService) GetAvailableColours(ctx context.Context) ([]tables.ProductAvailableColour, error) {
	rows, err := database.Query[tables.ProductAvailableColour](ps.db).OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return rows, nil
}
