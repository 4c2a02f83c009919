package uploads

import (
	"net/http"
	"strconv"

	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

const maxUploadBytes = 64 << 20

func formId(r *http.Request, key string) int64 {
	id, err := strconv.ParseInt(r.FormValue(key), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// UploadProductFile stores one product image; a missing or zero
// product_id creates a fresh product whose id comes back in the response.
func (urm *UploadRoutesManager) UploadProductFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		urm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("No files were uploaded."), gecho.Send())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("No files were uploaded."), gecho.Send())
		return
	}
	defer file.Close()

	resp, err := urm.uploadService.UploadProductFile(r.Context(),
		&structs.UploadFile{Name: header.Filename, Data: file},
		formId(r, "product_id"))
	if err != nil {
		urm.logger.Error("Product upload failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Problem occurred while uploading the file."), gecho.Send())
		return
	}
	if resp.UploadedImages == nil {
		gecho.NotFound(w, gecho.WithMessage("Problem occurred while uploading the file."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(resp), gecho.Send())
}

func (urm *UploadRoutesManager) UploadPurchaseFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		urm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid file."), gecho.Send())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid file."), gecho.Send())
		return
	}
	defer file.Close()

	purchaseId := formId(r, "purchase_id")
	if purchaseId <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid purchase ID."), gecho.Send())
		return
	}

	resp, err := urm.uploadService.UploadPurchaseFile(r.Context(),
		&structs.UploadFile{Name: header.Filename, Data: file},
		purchaseId)
	if err != nil {
		urm.logger.Error("Purchase upload failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Problem occurred while uploading the file."), gecho.Send())
		return
	}
	if resp.UploadedImages == nil {
		gecho.NotFound(w, gecho.WithMessage("No purchases found for the given purchase ID."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(resp), gecho.Send())
}

// UploadGalleryFiles replaces the whole gallery set for a product in one
// request.
func (urm *UploadRoutesManager) UploadGalleryFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		urm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("No files were uploaded."), gecho.Send())
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		gecho.BadRequest(w, gecho.WithMessage("No files were uploaded."), gecho.Send())
		return
	}

	var files []structs.UploadFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			urm.logger.Warn("Failed to open uploaded file",
				gecho.Field("name", header.Filename),
				gecho.Field("error", err))
			continue
		}
		defer f.Close()
		files = append(files, structs.UploadFile{Name: header.Filename, Data: f})
	}

	resp, err := urm.uploadService.UploadGalleryFiles(r.Context(), files, formId(r, "product_id"))
	if err != nil {
		urm.logger.Error("Gallery upload failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Problem occurred while uploading the files."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(resp), gecho.Send())
}
