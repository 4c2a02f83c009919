package services

import (
	"context"
	"strings"
	"time"

	"creativehands_server/database"
	"creativehands_server/lib"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// purchaseDateLayout is the legacy dd/MM/yyyy wire format for purchase
// dates.
const purchaseDateLayout = "02/01/2006"

// purchaseMinDate gates the date-range filter: ranges starting at or
// before it are ignored.
var purchaseMinDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PurchaseService tracks stock purchases and their providers. Save
// operations swallow failures and report -1, matching the legacy
// contract the admin frontend depends on.
type PurchaseService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewPurchaseService(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *PurchaseService {
	return &PurchaseService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

func mapPurchase(e *tables.Purchase) structs.Purchase {
	return structs.Purchase{
		Id:           e.Id,
		ProviderId:   e.ProviderId,
		Amount:       e.Amount,
		CreateDate:   e.Date.Format(purchaseDateLayout),
		Description:  e.Description,
		PurchaseLink: e.PurchaseLink,
	}
}

// GetPurchaseById returns one purchase, or nil when absent.
func (s *PurchaseService) GetPurchaseById(ctx context.Context, purchaseId int64) (*structs.Purchase, error) {
	row, err := database.Query[tables.Purchase](s.db).Where("id", purchaseId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row == nil {
		return nil, nil
	}
	mapped := mapPurchase(row)
	return &mapped, nil
}

// SavePurchase upserts a purchase. Returns the purchase id, or -1 when
// the date fails to parse or the write fails.
func (s *PurchaseService) SavePurchase(ctx context.Context, req *structs.PurchaseIn) int64 {
	date, err := time.Parse(purchaseDateLayout, req.CreateDate)
	if err != nil {
		s.logger.Warn("Failed to parse purchase date",
			gecho.Field("create_date", req.CreateDate),
			gecho.Field("error", err))
		return -1
	}

	var existing *tables.Purchase
	if req.Id > 0 {
		existing, err = database.Query[tables.Purchase](s.db).Where("id", req.Id).First(ctx)
		if err != nil {
			s.logger.Error("Failed to load purchase", gecho.Field("error", err))
			return -1
		}
	}

	if existing != nil {
		_, err = database.Query[tables.Purchase](s.db).
			Where("id", existing.Id).
			Update(ctx, map[string]any{
				"date":          date,
				"amount":        req.Amount,
				"description":   req.Description,
				"provider_id":   req.ProviderId,
				"purchase_link": req.PurchaseLink,
			})
		if err != nil {
			s.logger.Error("Failed to update purchase", gecho.Field("error", err))
			return -1
		}
		return existing.Id
	}

	entity := &tables.Purchase{
		ProviderId:   req.ProviderId,
		Date:         date,
		Amount:       req.Amount,
		Description:  req.Description,
		PurchaseLink: req.PurchaseLink,
	}
	if _, err = database.Query[tables.Purchase](s.db).Insert(ctx, entity); err != nil {
		s.logger.Error("Failed to insert purchase", gecho.Field("error", err))
		return -1
	}

	// record the receipt image extension when one was attached
	if req.Image != nil {
		parts := strings.Split(*req.Image, ".")
		if len(parts) > 1 && parts[1] != "" {
			image := &tables.PurchaseImage{PurchaseId: entity.Id, Extension: parts[1]}
			if _, err = database.Query[tables.PurchaseImage](s.db).Insert(ctx, image); err != nil {
				s.logger.Error("Failed to insert purchase image", gecho.Field("error", err))
				return -1
			}
		}
	}

	return entity.Id
}

// GetPurchases runs the AND-combined purchase search. Returns nil when
// nothing matches so the API layer can answer not-found.
func (s *PurchaseService) GetPurchases(ctx context.Context, req *structs.GetPurchasesRequest) ([]structs.Purchase, error) {
	query := database.Query[tables.Purchase](s.db)

	if req.Id != nil {
		query = query.Where("id", *req.Id)
	}
	if req.ProviderId != nil {
		query = query.Where("provider_id", *req.ProviderId)
	}

	var fromDate, toDate *time.Time
	if req.FromDate != nil {
		if parsed, err := time.Parse(purchaseDateLayout, *req.FromDate); err == nil {
			fromDate = &parsed
		}
	}
	if req.ToDate != nil {
		if parsed, err := time.Parse(purchaseDateLayout, *req.ToDate); err == nil {
			toDate = &parsed
		}
	}

	// the range conditions are deliberately asymmetric, kept from the
	// legacy system: FromDate applies only past the minimum date, and
	// ToDate has its own odd guard
	if fromDate != nil && fromDate.After(purchaseMinDate) {
		query = query.WhereOp("date", ">=", *fromDate)
	}
	if toDate != nil && (fromDate == nil || !fromDate.After(purchaseMinDate) || !toDate.Before(purchaseMinDate)) {
		query = query.WhereOp("date", "<=", *toDate)
	}

	rows, err := query.All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	result := make([]structs.Purchase, len(rows))
	for i := range rows {
		result[i] = mapPurchase(&rows[i])
	}
	return result, nil
}

// SaveProvider upserts a provider. Returns the provider id, or -1 on
// failure.
func (s *PurchaseService) SaveProvider(ctx context.Context, req *structs.ProviderIn) int64 {
	var existing *tables.Provider
	var err error
	if req.Id > 0 {
		existing, err = database.Query[tables.Provider](s.db).Where("id", req.Id).First(ctx)
		if err != nil {
			s.logger.Error("Failed to load provider", gecho.Field("error", err))
			return -1
		}
	}

	if existing != nil {
		isActive := existing.IsActive
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		_, err = database.Query[tables.Provider](s.db).
			Where("id", existing.Id).
			Update(ctx, map[string]any{
				"name":        req.Name,
				"idn":         req.IdN,
				"description": req.Description,
				"address":     req.Address,
				"tel1":        req.Tel1,
				"tel2":        req.Tel2,
				"email":       req.Email,
				"website":     req.WebSite,
				"is_active":   isActive,
			})
		if err != nil {
			s.logger.Error("Failed to update provider", gecho.Field("error", err))
			return -1
		}
		return existing.Id
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	entity := &tables.Provider{
		Name:        req.Name,
		IdN:         req.IdN,
		Description: req.Description,
		Address:     req.Address,
		Tel1:        req.Tel1,
		Tel2:        req.Tel2,
		Email:       req.Email,
		WebSite:     req.WebSite,
		IsActive:    isActive,
	}
	if _, err = database.Query[tables.Provider](s.db).Insert(ctx, entity); err != nil {
		s.logger.Error("Failed to insert provider", gecho.Field("error", err))
		return -1
	}
	return entity.Id
}

// GetProviders lists all providers; nil when there are none.
func (s *PurchaseService) GetProviders(ctx context.Context) ([]tables.Provider, error) {
	rows, err := database.Query[tables.Provider](s.db).All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

// GetProviderById returns one provider, or nil when absent.
func (s *PurchaseService) GetProviderById(ctx context.Context, providerId int64) (*tables.Provider, error) {
	row, err := database.Query[tables.Provider](s.db).Where("id", providerId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return row, nil
}

// DeleteProvider removes a provider; false when it does not exist or the
// delete fails.
func (s *PurchaseService) DeleteProvider(ctx context.Context, providerId int64) bool {
	existing, err := database.Query[tables.Provider](s.db).Where("id", providerId).First(ctx)
	if err != nil || existing == nil {
		return false
	}
	if _, err = database.Query[tables.Provider](s.db).Where("id", providerId).Delete(ctx); err != nil {
		s.logger.Error("Failed to delete provider", gecho.Field("error", err))
		return false
	}
	return true
}
