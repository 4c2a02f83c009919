package products

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (prm *ProductRoutesManager) SaveProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SaveProductRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	productId, err := prm.productService.SaveProduct(r.Context(), body)
	if err != nil {
		prm.logger.Error("Failed to save product", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the product."), gecho.Send())
		return
	}
	if productId <= 0 {
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the product."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(productId), gecho.Send())
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	deleted, err := prm.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w,
				gecho.WithMessage(fmt.Sprintf("Product %d cannot be deleted because it is referenced by order items.", id)),
				gecho.Send())
			return
		}
		prm.logger.Error("Failed to delete product", gecho.Field("productId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to delete the product"), gecho.Send())
		return
	}
	if !deleted {
		gecho.NotFound(w, gecho.WithMessage(fmt.Sprintf("Product with ID %d not found.", id)), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage(fmt.Sprintf("Product with ID %d deleted.", id)), gecho.Send())
}
