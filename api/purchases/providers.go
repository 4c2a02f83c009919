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

func (prm *PurchaseRoutesManager) GetProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := prm.purchaseService.GetProviders(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch providers", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch providers"), gecho.Send())
		return
	}
	if len(providers) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No providers found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(providers), gecho.Send())
}

func (prm *PurchaseRoutesManager) GetProviderById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid provider id"), gecho.Send())
		return
	}

	provider, err := prm.purchaseService.GetProviderById(r.Context(), id)
	if err != nil {
		prm.logger.Error("Failed to fetch provider", gecho.Field("providerId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch the provider"), gecho.Send())
		return
	}
	if provider == nil {
		gecho.NotFound(w, gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(provider), gecho.Send())
}

func (prm *PurchaseRoutesManager) SaveProvider(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ProviderIn](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Provider cannot be null."), gecho.Send())
		return
	}

	providerId := prm.purchaseService.SaveProvider(r.Context(), body)
	if providerId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the provider."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(providerId), gecho.Send())
}

// DeleteProvider answers 400 for a missing provider; legacy clients
// depend on that status.
func (prm *PurchaseRoutesManager) DeleteProvider(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid provider id"), gecho.Send())
		return
	}

	if !prm.purchaseService.DeleteProvider(r.Context(), id) {
		gecho.BadRequest(w, gecho.WithMessage(fmt.Sprintf("Provider with ID %d not found.", id)), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage(fmt.Sprintf("Provider with ID %d deleted.", id)), gecho.Send())
}
