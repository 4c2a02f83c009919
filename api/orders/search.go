package orders

import (
	"net/http"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

func (orm *OrderRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.GetOrdersRequest](r)
	if err != nil || body.OrderId == nil || *body.OrderId <= 0 {
		orm.logger.Warn("Invalid order lookup request", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrderById(r.Context(), *body.OrderId)
	if err != nil {
		orm.logger.Error("Failed to fetch order", gecho.Field("orderId", *body.OrderId), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch the order"), gecho.Send())
		return
	}
	if order == nil {
		gecho.NotFound(w, gecho.WithMessage("Order not found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(order), gecho.Send())
}

// GetOrders searches orders by any combination of criteria; a request
// with no criteria matches nothing and returns an empty list.
func (orm *OrderRoutesManager) GetOrders(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.GetOrdersRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	orders, err := orm.orderService.GetOrders(r.Context(), body)
	if err != nil {
		orm.logger.Error("Failed to search orders", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to search orders"), gecho.Send())
		return
	}
	if orders == nil {
		orders = []structs.Order{}
	}

	gecho.Success(w, gecho.WithData(orders), gecho.Send())
}
