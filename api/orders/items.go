package orders

import (
	"net/http"
	"strconv"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (orm *OrderRoutesManager) SaveOrderItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SaveOrderItemRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid order item data."), gecho.Send())
		return
	}

	itemId, err := orm.orderService.SaveOrderItem(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to save order item", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to save the order item."), gecho.Send())
		return
	}
	if itemId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("Failed to save the order item."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(itemId), gecho.Send())
}

func (orm *OrderRoutesManager) DeleteOrderItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order item id"), gecho.Send())
		return
	}

	deleted, err := orm.orderService.DeleteOrderItem(r.Context(), id)
	if err != nil {
		orm.logger.Error("Failed to delete order item", gecho.Field("itemId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to delete the order item"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(deleted), gecho.Send())
}
