package purchases

import (
	"fmt"
	"net/http"
	"strconv"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (prm *PurchaseRoutesManager) GetPurchases(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.GetPurchasesRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request data."), gecho.Send())
		return
	}

	purchases, err := prm.purchaseService.GetPurchases(r.Context(), body)
	if err != nil {
		prm.logger.Error("Failed to search purchases", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to search purchases"), gecho.Send())
		return
	}
	if len(purchases) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No purchases found for the given request."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(purchases), gecho.Send())
}

func (prm *PurchaseRoutesManager) GetPurchaseById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid purchase ID."), gecho.Send())
		return
	}

	purchase, err := prm.purchaseService.GetPurchaseById(r.Context(), id)
	if err != nil {
		prm.logger.Error("Failed to fetch purchase", gecho.Field("purchaseId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch the purchase"), gecho.Send())
		return
	}
	if purchase == nil {
		gecho.NotFound(w, gecho.WithMessage(fmt.Sprintf("No purchase found with ID %d.", id)), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(purchase), gecho.Send())
}

func (prm *PurchaseRoutesManager) SavePurchase(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.PurchaseIn](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid purchase data."), gecho.Send())
		return
	}

	purchaseId := prm.purchaseService.SavePurchase(r.Context(), body)
	if purchaseId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the purchase."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(purchaseId), gecho.Send())
}
