package structs

import "io"

// UploadFile is one incoming file from a multipart request: the original
// client filename (used for its extension) and the content stream.
type UploadFile struct {
	Name string
	Data io.Reader
}

// UploadFilesResponse reports where uploaded files landed. Identifier
// fields are -1 on invalid input, 0 when not applicable. UploadedImages
// is nil on invalid input and empty when nothing reached the file store.
type UploadFilesResponse struct {
	VideoId        int64    `json:"video_id"`
	ProductId      int64    `json:"product_id"`
	PurchaseId     int64    `json:"purchase_id"`
	UploadedImages []string `json:"uploaded_images"`
}
