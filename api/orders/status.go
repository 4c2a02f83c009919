package orders

import (
	"net/http"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

// ChangeOrderStatus takes a full order payload and applies its status.
func (orm *OrderRoutesManager) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.Order](r)
	if err != nil || body.Id <= 0 {
		orm.logger.Warn("Invalid status change payload", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid order data."), gecho.Send())
		return
	}

	req := &structs.ChangeOrderStatusRequest{Id: body.Id, StatusId: body.StatusId}
	updatedId, err := orm.orderService.ChangeOrderStatus(r.Context(), req)
	if err != nil {
		orm.logger.Error("Failed to change order status", gecho.Field("orderId", body.Id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to change the order status."), gecho.Send())
		return
	}
	if updatedId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("Failed to change the order status."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(updatedId), gecho.Send())
}

// ChangeOrderStatusById verifies the order exists before applying the
// new status, so callers get a 404 rather than a silent no-op.
func (orm *OrderRoutesManager) ChangeOrderStatusById(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ChangeOrderStatusRequest](r)
	if err != nil || body.Id <= 0 {
		orm.logger.Warn("Invalid status change request", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid data"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrderById(r.Context(), body.Id)
	if err != nil {
		orm.logger.Error("Failed to load order", gecho.Field("orderId", body.Id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to change the order status."), gecho.Send())
		return
	}
	if order == nil {
		gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
		return
	}

	updatedId, err := orm.orderService.ChangeOrderStatus(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to change order status", gecho.Field("orderId", body.Id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to change the order status."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(updatedId), gecho.Send())
}
