package orders

import (
	"net/http"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) SaveOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.Order](r)
	if err != nil || len(body.OrderItems) == 0 {
		orm.logger.Warn("Invalid order payload", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid order data."), gecho.Send())
		return
	}

	orderId, err := orm.orderService.SaveOrder(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to save order", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to save the order."), gecho.Send())
		return
	}
	if orderId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("Failed to save the order."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(orderId), gecho.Send())
}

func (orm *OrderRoutesManager) SendOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SendOrderRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request data."), gecho.Send())
		return
	}

	sent, err := orm.orderService.SendOrder(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to send order", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to send the order."), gecho.Send())
		return
	}
	if !sent {
		gecho.InternalServerError(w, gecho.WithMessage("Failed to send the order."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(sent), gecho.Send())
}
