package products

import (
	"net/http"
	"strconv"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (prm *ProductRoutesManager) GetProducts(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.GetProductsRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	items, err := prm.productService.GetProducts(r.Context(), body)
	if err != nil {
		prm.logger.Error("Failed to search products", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to search products"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No products found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}

func (prm *ProductRoutesManager) GetProductById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.GetProductById(r.Context(), id)
	if err != nil {
		prm.logger.Error("Failed to fetch product", gecho.Field("productId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch the product"), gecho.Send())
		return
	}
	if product == nil {
		gecho.NotFound(w, gecho.WithMessage("Product not found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

func (prm *ProductRoutesManager) GetCategories(w http.ResponseWriter, r *http.Request) {
	items, err := prm.productService.GetCategories(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch categories"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No categories found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}

func (prm *ProductRoutesManager) GetProductCategories(w http.ResponseWriter, r *http.Request) {
	items, err := prm.productService.GetProductCategories(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch product categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch product categories"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No product categories found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}

func (prm *ProductRoutesManager) GetImages(w http.ResponseWriter, r *http.Request) {
	items, err := prm.productService.GetImages(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch images", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch images"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No images found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}

func (prm *ProductRoutesManager) GetProductVariations(w http.ResponseWriter, r *http.Request) {
	items, err := prm.productService.GetProductVariations(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch product variations", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch product variations"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No product variations found."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}

func (prm *ProductRoutesManager) GetAvailableColours(w http.ResponseWriter, r *http.Request) {
	items, err := prm.productService.GetAvailableColours(r.Context())
	if err != nil {
		prm.logger.Error("Failed to fetch available colours", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to fetch available colours"), gecho.Send())
		return
	}
	if len(items) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No colours available."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(items), gecho.Send())
}
