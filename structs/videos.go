package structs

// GetVideosRequest filters are ANDed; zero values mean "no filter",
// except Id where 0 is treated as absent.
type GetVideosRequest struct {
	Id          int64  `json:"id"`
	VideoName   string `json:"video_name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Video is the catalog entry handed back to clients; the stored file is
// "<VideoName>.<Extension>" on the remote file store.
type Video struct {
	Id          int64   `json:"id"`
	VideoName   string  `json:"video_name"`
	Extension   string  `json:"extension"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SaveVideoRequest struct {
	Id          int64   `json:"id"` // 0 means insert
	VideoName   string  `json:"video_name"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Extension   string  `json:"extension"` // used on update only; inserts derive it from the file
}
