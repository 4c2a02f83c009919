package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"creativehands_server/database"
	"creativehands_server/lib"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

// OrderService owns the order/cart lifecycle: cart lookup and creation,
// line-item merging, colour-set sync, full-order reconciliation and the
// Cart -> Accepted transition.
type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	emailService *EmailService

	now func() time.Time
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		emailService: emailService,
		now:          time.Now,
	}
}

// ------------ helpers: loaders & mappers ------------

func (s *OrderService) loadCustomer(ctx context.Context, customerId int64) (*tables.Customer, error) {
	if customerId == 0 {
		return nil, nil
	}
	return database.Query[tables.Customer](s.db).Where("id", customerId).First(ctx)
}

func (s *OrderService) loadItems(ctx context.Context, orderId int64) ([]tables.OrderItem, error) {
	return database.Query[tables.OrderItem](s.db).Where("order_id", orderId).All(ctx)
}

func (s *OrderService) loadItemColours(ctx context.Context, orderItemId int64) ([]string, error) {
	rows, err := database.Query[tables.OrderItemColour](s.db).Where("order_item_id", orderItemId).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Code
	}
	return codes, nil
}

func (s *OrderService) mapOrderItem(ctx context.Context, oi *tables.OrderItem) (structs.OrderItem, error) {
	colours, err := s.loadItemColours(ctx, oi.Id)
	if err != nil {
		return structs.OrderItem{}, err
	}
	return structs.OrderItem{
		Id:                 oi.Id,
		OrderId:            oi.OrderId,
		ProductId:          oi.ProductId,
		UnitPrice:          oi.UnitPrice,
		Quantity:           oi.Quantity,
		Note:               oi.Note,
		ProductVariationId: oi.ProductVariationId,
		Colours:            colours,
	}, nil
}

func (s *OrderService) mapOrder(ctx context.Context, o *tables.Order) (*structs.Order, error) {
	customer, err := s.loadCustomer(ctx, o.CustomerId)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadItems(ctx, o.Id)
	if err != nil {
		return nil, err
	}
	items := make([]structs.OrderItem, 0, len(rows))
	for i := range rows {
		item, err := s.mapOrderItem(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &structs.Order{
		Id:            o.Id,
		UserId:        o.UserId,
		CustomerId:    o.CustomerId,
		StatusId:      o.StatusId,
		DeliveryPrice: o.DeliveryPrice,
		CreateDate:    o.CreateDate,
		Address:       o.Address,
		Notes:         o.Notes,
		Discount:      o.Discount,
		Customer:      customer,
		OrderItems:    items,
	}, nil
}

// syncItemColours reconciles the persisted colour set of one line item
// against the desired set. A nil slice means the caller did not intend to
// touch colours; an empty non-nil slice clears them. Runs inside the
// caller's transaction.
func (s *OrderService) syncItemColours(ctx context.Context, tx bun.Tx, orderItemId int64, colours []string) error {
	if colours == nil {
		return nil
	}

	var existingRows []tables.OrderItemColour
	if err := tx.NewSelect().Model(&existingRows).Where("order_item_id = ?", orderItemId).Scan(ctx); err != nil {
		return err
	}

	existing := make(map[string]bool, len(existingRows))
	for _, r := range existingRows {
		existing[r.Code] = true
	}
	incoming := make(map[string]bool, len(colours))
	for _, code := range colours {
		incoming[code] = true
	}

	// add new
	for code := range incoming {
		if !existing[code] {
			row := &tables.OrderItemColour{OrderItemId: orderItemId, Code: code}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
		}
	}

	// remove missing (only for this item)
	toRemove := make([]string, 0)
	for _, r := range existingRows {
		if !incoming[r.Code] {
			toRemove = append(toRemove, r.Code)
		}
	}
	if len(toRemove) > 0 {
		_, err := tx.NewDelete().
			Model((*tables.OrderItemColour)(nil)).
			Where("order_item_id = ?", orderItemId).
			Where("code IN (?)", bun.In(toRemove)).
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// resolveUnitPrice picks the line price snapshot: an explicit positive
// unit price wins, then a nonzero sale price strictly below list, then
// the list price.
func resolveUnitPrice(req *structs.AddToCartRequest) float64 {
	if req.ProductUnitPrice > 0 {
		return req.ProductUnitPrice
	}
	if req.ProductSalePrice != 0 && req.ProductSalePrice < req.ProductPrice {
		return req.ProductSalePrice
	}
	return req.ProductPrice
}

func optionalNote(note string) *string {
	if note == "" {
		return nil
	}
	return &note
}

// ---------------------- operations ----------------------

// GetOrderById retrieves one order with its customer and line items.
// Returns nil when the order does not exist.
func (s *OrderService) GetOrderById(ctx context.Context, orderId int64) (*structs.Order, error) {
	row, err := database.Query[tables.Order](s.db).Where("id", orderId).First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row == nil {
		return nil, nil
	}
	return s.mapOrder(ctx, row)
}

// GetCart retrieves the open cart for a user. Returns nil when the user
// has no cart; callers substitute EmptyCart for display.
func (s *OrderService) GetCart(ctx context.Context, userId string) (*structs.Order, error) {
	row, err := database.Query[tables.Order](s.db).
		Where("user_id", userId).
		Where("status_id", tables.OrderStatusCart).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if row == nil {
		return nil, nil
	}
	return s.mapOrder(ctx, row)
}

// EmptyCart builds the transient empty-cart placeholder (id 0). It is
// never persisted.
func (s *OrderService) EmptyCart(userId string) *structs.Order {
	address := ""
	return &structs.Order{
		Id:         0,
		UserId:     &userId,
		CustomerId: 0,
		StatusId:   tables.OrderStatusCart,
		CreateDate: s.now(),
		Address:    &address,
		OrderItems: []structs.OrderItem{},
	}
}

// ChangeOrderStatus sets status_id on the matched order. It is a bare
// setter: transition legality is a business-layer concern. Returns -1
// when the order does not exist.
func (s *OrderService) ChangeOrderStatus(ctx context.Context, req *structs.ChangeOrderStatusRequest) (int64, error) {
	row, err := database.Query[tables.Order](s.db).Where("id", req.Id).First(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	if row == nil {
		return -1, nil
	}

	_, err = database.Query[tables.Order](s.db).
		Where("id", row.Id).
		Update(ctx, map[string]any{"status_id": req.StatusId})
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	s.logger.Info("Order status changed",
		gecho.Field("order_id", row.Id),
		gecho.Field("status_id", req.StatusId))

	return row.Id, nil
}

// AddToCart finds or creates the caller's cart and merges the requested
// product into it. An empty user id matches any open cart, which is
// intentional for session-less flows. Returns the affected line item id.
func (s *OrderService) AddToCart(ctx context.Context, req *structs.AddToCartRequest) (itemId int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			s.logger.Error(fmt.Sprintf("panic in AddToCart: %v", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// find existing cart (by specific user, or any open cart when the
	// user id is empty)
	cartQuery := tx.NewSelect().
		Model((*tables.Order)(nil)).
		Where("status_id = ?", tables.OrderStatusCart)
	if req.UserId != "" {
		cartQuery = cartQuery.Where("user_id = ?", req.UserId)
	}

	var cart tables.Order
	err = cartQuery.Limit(1).Scan(ctx, &cart)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, lib.MapPgError(err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		// no cart yet: create one for the guest customer and insert the
		// first line
		err = nil
		userId := optionalNote(req.UserId)
		newCart := &tables.Order{
			UserId:     userId,
			StatusId:   tables.OrderStatusCart,
			CustomerId: tables.GuestCustomerId,
			CreateDate: s.now(),
		}
		if _, err = tx.NewInsert().Model(newCart).Exec(ctx); err != nil {
			return 0, lib.MapPgError(err)
		}

		return s.insertCartItem(ctx, tx, newCart.Id, req)
	}

	// does a line with the same product exist?
	var existProduct tables.OrderItem
	err = tx.NewSelect().Model(&existProduct).
		Where("order_id = ?", cart.Id).
		Where("product_id = ?", req.ProductId).
		Limit(1).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, lib.MapPgError(err)
	}

	if err == nil {
		if req.ProductVariationId == nil {
			return s.accumulateCartItem(ctx, tx, &existProduct, req)
		}

		// try a line with the same variation. The variation lookup does
		// not re-check product_id; two products sharing a variation id
		// merge here. Observable calling behavior, kept as-is.
		var existVariation tables.OrderItem
		err = tx.NewSelect().Model(&existVariation).
			Where("order_id = ?", cart.Id).
			Where("product_variation_id = ?", *req.ProductVariationId).
			Limit(1).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return 0, lib.MapPgError(err)
		}
		if err == nil {
			return s.accumulateCartItem(ctx, tx, &existVariation, req)
		}
		err = nil
		return s.insertCartItem(ctx, tx, cart.Id, req)
	}

	err = nil
	return s.insertCartItem(ctx, tx, cart.Id, req)
}

func (s *OrderService) accumulateCartItem(ctx context.Context, tx bun.Tx, item *tables.OrderItem, req *structs.AddToCartRequest) (int64, error) {
	_, err := tx.NewUpdate().
		Model((*tables.OrderItem)(nil)).
		Set("quantity = ?", item.Quantity+req.Quantity).
		Where("id = ?", item.Id).
		Exec(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	if err := s.syncItemColours(ctx, tx, item.Id, req.OrderItemColours); err != nil {
		return 0, lib.MapPgError(err)
	}
	return item.Id, nil
}

func (s *OrderService) insertCartItem(ctx context.Context, tx bun.Tx, orderId int64, req *structs.AddToCartRequest) (int64, error) {
	newItem := &tables.OrderItem{
		OrderId:            orderId,
		ProductId:          req.ProductId,
		ProductVariationId: req.ProductVariationId,
		Quantity:           req.Quantity,
		UnitPrice:          resolveUnitPrice(req),
		Note:               optionalNote(req.Note),
		CreateDate:         s.now(),
	}
	if _, err := tx.NewInsert().Model(newItem).Exec(ctx); err != nil {
		return 0, lib.MapPgError(err)
	}
	if err := s.syncItemColours(ctx, tx, newItem.Id, req.OrderItemColours); err != nil {
		return 0, lib.MapPgError(err)
	}
	return newItem.Id, nil
}

// SendOrder transitions a Cart order to Accepted, attaching real
// customer details. Returns false when no matching cart exists.
func (s *OrderService) SendOrder(ctx context.Context, req *structs.SendOrderRequest) (ok bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			s.logger.Error(fmt.Sprintf("panic in SendOrder: %v", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var order tables.Order
	err = tx.NewSelect().Model(&order).
		Where("status_id = ?", tables.OrderStatusCart).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.WhereOr("id = ?", req.OrderId).WhereOr("user_id = ?", req.UserId)
		}).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return false, nil
	}
	if err != nil {
		return false, lib.MapPgError(err)
	}

	var customer tables.Customer
	customerErr := tx.NewSelect().Model(&customer).
		Where("id = ?", order.CustomerId).
		Limit(1).
		Scan(ctx)
	if customerErr != nil && !errors.Is(customerErr, sql.ErrNoRows) {
		err = lib.MapPgError(customerErr)
		return false, err
	}
	haveCustomer := customerErr == nil

	if haveCustomer && order.CustomerId != tables.GuestCustomerId {
		// real customer already attached: refresh contact fields in place
		_, err = tx.NewUpdate().
			Model((*tables.Customer)(nil)).
			Set("name = ?", req.CustomerName).
			Set("tel1 = ?", req.CustomerTel).
			Set("notes = ?", req.Notes).
			Set("address = ?", req.Address).
			Where("id = ?", customer.Id).
			Exec(ctx)
		if err != nil {
			return false, lib.MapPgError(err)
		}
	} else {
		address := req.Address
		customer = tables.Customer{
			Name:    req.CustomerName,
			Tel1:    req.CustomerTel,
			Notes:   req.Notes,
			Address: &address,
			Email:   req.CustomerEmail,
		}
		if _, err = tx.NewInsert().Model(&customer).Exec(ctx); err != nil {
			return false, lib.MapPgError(err)
		}
	}

	update := tx.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("customer_id = ?", customer.Id).
		Set("status_id = ?", tables.OrderStatusAccepted).
		Set("user_id = NULL").
		Where("id = ?", order.Id)
	if req.Notes != nil {
		update = update.Set("notes = ?", req.Notes)
	}
	if _, err = update.Exec(ctx); err != nil {
		return false, lib.MapPgError(err)
	}

	s.logger.Info("Order sent",
		gecho.Field("order_id", order.Id),
		gecho.Field("customer_id", customer.Id))

	// Send order confirmation email asynchronously
	if s.emailService != nil && req.CustomerEmail != nil && *req.CustomerEmail != "" {
		orderId := order.Id
		email := *req.CustomerEmail
		name := req.CustomerName
		go func() {
			if emailErr := s.emailService.SendOrderAcceptedEmail(email, name, orderId); emailErr != nil {
				s.logger.Error("Failed to send order confirmation email",
					gecho.Field("error", emailErr),
					gecho.Field("order_id", orderId))
			}
		}()
	}

	return true, nil
}

// SaveOrder performs a full upsert of an order aggregate: scalar fields,
// the linked customer, and a reconcile of the incoming item list against
// persisted rows (update / quantity-zero delete / insert / prune). All
// writes happen in one transaction.
func (s *OrderService) SaveOrder(ctx context.Context, saveOrder *structs.Order) (orderId int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			s.logger.Error(fmt.Sprintf("panic in SaveOrder: %v", p),
				gecho.Field("stack_trace", string(debug.Stack())))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var dbOrder tables.Order
	err = tx.NewSelect().Model(&dbOrder).
		Where("id = ?", saveOrder.Id).
		Limit(1).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, lib.MapPgError(err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return s.insertOrder(ctx, tx, saveOrder)
	}

	// update existing order
	createDate := saveOrder.CreateDate
	if createDate.IsZero() {
		createDate = s.now()
	}
	_, err = tx.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("create_date = ?", createDate).
		Set("status_id = ?", saveOrder.StatusId).
		Set("address = ?", saveOrder.Address).
		Set("discount = ?", saveOrder.Discount).
		Set("delivery_price = ?", saveOrder.DeliveryPrice).
		Set("notes = ?", saveOrder.Notes).
		Where("id = ?", dbOrder.Id).
		Exec(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	// update customer, including re-pointing its primary id to the
	// incoming value. Pre-existing oddity, kept for parity.
	if dbOrder.CustomerId != 0 && saveOrder.Customer != nil {
		_, err = tx.NewUpdate().
			Model((*tables.Customer)(nil)).
			Set("id = ?", saveOrder.Customer.Id).
			Set("name = ?", saveOrder.Customer.Name).
			Set("tel1 = ?", saveOrder.Customer.Tel1).
			Set("tel2 = ?", saveOrder.Customer.Tel2).
			Set("address = ?", saveOrder.Customer.Address).
			Set("email = ?", saveOrder.Customer.Email).
			Set("notes = ?", saveOrder.Customer.Notes).
			Where("id = ?", dbOrder.CustomerId).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
	}

	// upsert items
	newItemIds := make(map[int64]bool)
	for i := range saveOrder.OrderItems {
		soi := &saveOrder.OrderItems[i]

		var dbItem *tables.OrderItem
		if soi.Id != 0 {
			var found tables.OrderItem
			itemErr := tx.NewSelect().Model(&found).
				Where("id = ?", soi.Id).
				Limit(1).
				Scan(ctx)
			if itemErr != nil && !errors.Is(itemErr, sql.ErrNoRows) {
				err = lib.MapPgError(itemErr)
				return 0, err
			}
			if itemErr == nil {
				dbItem = &found
			}
		}

		switch {
		case dbItem != nil && soi.Quantity > 0:
			_, err = tx.NewUpdate().
				Model((*tables.OrderItem)(nil)).
				Set("quantity = ?", soi.Quantity).
				Set("unit_price = ?", soi.UnitPrice).
				Where("id = ?", dbItem.Id).
				Exec(ctx)
			if err != nil {
				return 0, lib.MapPgError(err)
			}
			if err = s.syncItemColours(ctx, tx, dbItem.Id, soi.Colours); err != nil {
				return 0, lib.MapPgError(err)
			}

		case dbItem != nil && soi.Quantity == 0:
			// quantity zero means delete: colours first, then the item
			if err = s.deleteItemWithColours(ctx, tx, dbItem.Id); err != nil {
				return 0, err
			}

		default:
			newItem := &tables.OrderItem{
				OrderId:    dbOrder.Id,
				ProductId:  soi.ProductId,
				Quantity:   soi.Quantity,
				UnitPrice:  soi.UnitPrice,
				Note:       soi.Note,
				CreateDate: s.now(),
			}
			if _, err = tx.NewInsert().Model(newItem).Exec(ctx); err != nil {
				return 0, lib.MapPgError(err)
			}
			newItemIds[newItem.Id] = true
			if err = s.syncItemColours(ctx, tx, newItem.Id, soi.Colours); err != nil {
				return 0, lib.MapPgError(err)
			}
		}
	}

	// prune persisted items absent from the payload and not created in
	// this same call
	var existingIds []int64
	err = tx.NewSelect().
		Model((*tables.OrderItem)(nil)).
		Column("id").
		Where("order_id = ?", dbOrder.Id).
		Scan(ctx, &existingIds)
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	payloadIds := make(map[int64]bool)
	for _, it := range saveOrder.OrderItems {
		if it.Id != 0 {
			payloadIds[it.Id] = true
		}
	}

	idsToDelete := make([]int64, 0)
	for _, id := range existingIds {
		if !payloadIds[id] && !newItemIds[id] {
			idsToDelete = append(idsToDelete, id)
		}
	}
	if len(idsToDelete) > 0 {
		_, err = tx.NewDelete().
			Model((*tables.OrderItemColour)(nil)).
			Where("order_item_id IN (?)", bun.In(idsToDelete)).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
		_, err = tx.NewDelete().
			Model((*tables.OrderItem)(nil)).
			Where("id IN (?)", bun.In(idsToDelete)).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
	}

	s.logger.Info("Order saved", gecho.Field("order_id", dbOrder.Id))

	return dbOrder.Id, nil
}

func (s *OrderService) insertOrder(ctx context.Context, tx bun.Tx, saveOrder *structs.Order) (int64, error) {
	createDate := saveOrder.CreateDate
	if createDate.IsZero() {
		createDate = s.now()
	}

	newOrder := &tables.Order{
		UserId:        saveOrder.UserId,
		CustomerId:    saveOrder.CustomerId,
		StatusId:      saveOrder.StatusId,
		DeliveryPrice: saveOrder.DeliveryPrice,
		CreateDate:    createDate,
		Address:       saveOrder.Address,
		Notes:         saveOrder.Notes,
		Discount:      saveOrder.Discount,
	}
	if _, err := tx.NewInsert().Model(newOrder).Exec(ctx); err != nil {
		return 0, lib.MapPgError(err)
	}

	for i := range saveOrder.OrderItems {
		soi := &saveOrder.OrderItems[i]
		newItem := &tables.OrderItem{
			OrderId:    newOrder.Id,
			ProductId:  soi.ProductId,
			Quantity:   soi.Quantity,
			UnitPrice:  soi.UnitPrice,
			Note:       soi.Note,
			CreateDate: s.now(),
		}
		if _, err := tx.NewInsert().Model(newItem).Exec(ctx); err != nil {
			return 0, lib.MapPgError(err)
		}
		if err := s.syncItemColours(ctx, tx, newItem.Id, soi.Colours); err != nil {
			return 0, lib.MapPgError(err)
		}
	}

	s.logger.Info("Order created", gecho.Field("order_id", newOrder.Id))

	return newOrder.Id, nil
}

// SaveOrderItem updates one line by id, or merges by (order, product)
// when no id is given. Returns -1 when an explicit id does not resolve.
func (s *OrderService) SaveOrderItem(ctx context.Context, req *structs.SaveOrderItemRequest) (itemId int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			s.logger.Error(fmt.Sprintf("panic in SaveOrderItem: %v", p))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	if req.Id > 0 {
		var dbItem tables.OrderItem
		err = tx.NewSelect().Model(&dbItem).
			Where("id = ?", req.Id).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			return -1, nil
		}
		if err != nil {
			return 0, lib.MapPgError(err)
		}

		_, err = tx.NewUpdate().
			Model((*tables.OrderItem)(nil)).
			Set("quantity = ?", req.Quantity).
			Set("unit_price = ?", req.UnitPrice).
			Where("id = ?", req.Id).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
		if err = s.syncItemColours(ctx, tx, req.Id, req.Colours); err != nil {
			return 0, lib.MapPgError(err)
		}
		return req.Id, nil
	}

	// merge by (order, product)
	var existing tables.OrderItem
	err = tx.NewSelect().Model(&existing).
		Where("order_id = ?", req.OrderId).
		Where("product_id = ?", req.ProductId).
		Limit(1).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, lib.MapPgError(err)
	}

	if err == nil {
		_, err = tx.NewUpdate().
			Model((*tables.OrderItem)(nil)).
			Set("quantity = ?", existing.Quantity+req.Quantity).
			Set("unit_price = ?", req.UnitPrice).
			Where("id = ?", existing.Id).
			Exec(ctx)
		if err != nil {
			return 0, lib.MapPgError(err)
		}
		if err = s.syncItemColours(ctx, tx, existing.Id, req.Colours); err != nil {
			return 0, lib.MapPgError(err)
		}
		return existing.Id, nil
	}

	err = nil
	newItem := &tables.OrderItem{
		OrderId:    req.OrderId,
		ProductId:  req.ProductId,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Note:       req.Note,
		CreateDate: s.now(),
	}
	if _, err = tx.NewInsert().Model(newItem).Exec(ctx); err != nil {
		return 0, lib.MapPgError(err)
	}
	if err = s.syncItemColours(ctx, tx, newItem.Id, req.Colours); err != nil {
		return 0, lib.MapPgError(err)
	}
	return newItem.Id, nil
}

// GetOrders runs the OR-combined criteria search. Absent criteria
// contribute no matches; a request with no criteria returns nil rather
// than every order. Results are sorted by id descending.
func (s *OrderService) GetOrders(ctx context.Context, req *structs.GetOrdersRequest) ([]structs.Order, error) {
	// try to match a customer by the provided fields
	var orderCustomer *tables.Customer
	if req.CustomerId != nil || req.CustomerName != nil || req.CustomerTel != nil {
		q := s.db.NewSelect().Model((*tables.Customer)(nil))
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			if req.CustomerId != nil {
				q = q.WhereOr("id = ?", *req.CustomerId)
			}
			if req.CustomerTel != nil {
				q = q.WhereOr("tel1 = ?", *req.CustomerTel).WhereOr("tel2 = ?", *req.CustomerTel)
			}
			if req.CustomerName != nil {
				q = q.WhereOr("name = ?", *req.CustomerName)
			}
			return q
		})

		var probed tables.Customer
		err := q.Limit(1).Scan(ctx, &probed)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, lib.MapPgError(err)
		}
		if err == nil {
			orderCustomer = &probed
		}
	}

	if req.OrderId == nil && req.CustomerId == nil && req.StatusId == nil && orderCustomer == nil {
		return nil, nil
	}

	var rows []tables.Order
	err := s.db.NewSelect().Model(&rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			if req.OrderId != nil {
				q = q.WhereOr("id = ?", *req.OrderId)
			}
			if req.CustomerId != nil {
				q = q.WhereOr("customer_id = ?", *req.CustomerId)
			}
			if orderCustomer != nil {
				q = q.WhereOr("customer_id = ?", orderCustomer.Id)
			}
			if req.StatusId != nil {
				q = q.WhereOr("status_id = ?", *req.StatusId)
			}
			return q
		}).
		OrderExpr("id DESC").
		Scan(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	mapped := make([]structs.Order, 0, len(rows))
	for i := range rows {
		order, mapErr := s.mapOrder(ctx, &rows[i])
		if mapErr != nil {
			return nil, mapErr
		}
		mapped = append(mapped, *order)
	}
	return mapped, nil
}

// MigrateAnonymousCart re-keys a Cart order from an anonymous session
// token to an authenticated user id. Returns -1 when no such cart
// exists.
func (s *OrderService) MigrateAnonymousCart(ctx context.Context, req *structs.MigrateCartRequest) (int64, error) {
	var row tables.Order
	err := s.db.NewSelect().Model(&row).
		Where("status_id = ?", tables.OrderStatusCart).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.WhereOr("user_id = ?", req.CartToken).WhereOr("user_id = ?", req.UserId)
		}).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	_, err = database.Query[tables.Order](s.db).
		Where("id", row.Id).
		Update(ctx, map[string]any{"user_id": req.UserId})
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	s.logger.Info("Anonymous cart migrated",
		gecho.Field("order_id", row.Id),
		gecho.Field("user_id", req.UserId))

	return row.Id, nil
}

// DeleteOrderItem removes one line item and its colours. Returns false
// when the item does not exist.
func (s *OrderService) DeleteOrderItem(ctx context.Context, id int64) (ok bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			s.logger.Error(fmt.Sprintf("panic in DeleteOrderItem: %v", p))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var dbItem tables.OrderItem
	err = tx.NewSelect().Model(&dbItem).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return false, nil
	}
	if err != nil {
		return false, lib.MapPgError(err)
	}

	if err = s.deleteItemWithColours(ctx, tx, dbItem.Id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *OrderService) deleteItemWithColours(ctx context.Context, tx bun.Tx, itemId int64) error {
	_, err := tx.NewDelete().
		Model((*tables.OrderItemColour)(nil)).
		Where("order_item_id = ?", itemId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	_, err = tx.NewDelete().
		Model((*tables.OrderItem)(nil)).
		Where("id = ?", itemId).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
