package orders

import (
	"net/http"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

// GetCart returns the caller's open cart. When no cart exists yet an
// empty, unpersisted one is returned so the storefront always has
// something to render.
func (orm *OrderRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("userId")
	if userId == "" {
		gecho.BadRequest(w, gecho.WithMessage("userId is required"), gecho.Send())
		return
	}

	cart, err := orm.orderService.GetCart(r.Context(), userId)
	if err != nil {
		orm.logger.Error("Failed to fetch cart", gecho.Field("userId", userId), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch the cart"), gecho.Send())
		return
	}
	if cart == nil {
		cart = orm.orderService.EmptyCart(userId)
	}

	gecho.Success(w, gecho.WithData(cart), gecho.Send())
}

func (orm *OrderRoutesManager) AddToCart(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AddToCartRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	itemId, err := orm.orderService.AddToCart(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to add to cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to add the item to the cart"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(itemId), gecho.Send())
}

func (orm *OrderRoutesManager) MigrateCart(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MigrateCartRequest](r)
	if err != nil || body.CartToken == "" || body.UserId == "" {
		orm.logger.Warn("Invalid cart migration request", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid order data."), gecho.Send())
		return
	}

	orderId, err := orm.orderService.MigrateAnonymousCart(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to migrate cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to migrate the cart"), gecho.Send())
		return
	}
	if orderId <= 0 {
		gecho.NotFound(w, gecho.WithMessage("No cart found to migrate"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(orderId), gecho.Send())
}
