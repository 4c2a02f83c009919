package videos

import (
	"fmt"
	"net/http"
	"strconv"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const maxVideoUploadBytes = 256 << 20

func (vrm *VideoRoutesManager) GetVideos(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.GetVideosRequest](r)
	if err != nil {
		vrm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	videos, err := vrm.videoService.GetVideos(r.Context(), body)
	if err != nil {
		vrm.logger.Error("Failed to search videos", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Failed to search videos"), gecho.Send())
		return
	}
	if len(videos) == 0 {
		gecho.NotFound(w, gecho.WithMessage("No videos found matching the given criteria."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(videos), gecho.Send())
}

// SaveVideo is a multipart endpoint: the video file plus catalog fields.
func (vrm *VideoRoutesManager) SaveVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxVideoUploadBytes); err != nil {
		vrm.logger.Warn("Failed to parse multipart form", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid file."), gecho.Send())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header.Size == 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid file."), gecho.Send())
		return
	}
	defer file.Close()

	videoName := r.FormValue("video_name")
	if videoName == "" {
		gecho.BadRequest(w, gecho.WithMessage("Invalid request."), gecho.Send())
		return
	}

	req := &structs.SaveVideoRequest{
		VideoName: videoName,
		Extension: r.FormValue("extension"),
	}
	if idStr := r.FormValue("id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			req.Id = id
		}
	}
	if title := r.FormValue("title"); title != "" {
		req.Title = &title
	}
	if description := r.FormValue("description"); description != "" {
		req.Description = &description
	}

	resp, err := vrm.videoService.SaveVideo(r.Context(), file, header.Filename, req)
	if err != nil {
		vrm.logger.Error("Failed to save video", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the video."), gecho.Send())
		return
	}
	if resp == nil {
		gecho.InternalServerError(w, gecho.WithMessage("An error occurred while saving the video."), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(resp), gecho.Send())
}

// DeleteVideo answers 400 for a missing video; legacy clients depend on
// that status.
func (vrm *VideoRoutesManager) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		gecho.BadRequest(w, gecho.WithMessage("Invalid video id"), gecho.Send())
		return
	}

	deleted, err := vrm.videoService.DeleteVideo(r.Context(), id)
	if err != nil {
		vrm.logger.Error("Failed to delete video", gecho.Field("videoId", id), gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage(fmt.Sprintf("Internal server error, Deleting Video: %d", id)), gecho.Send())
		return
	}
	if !deleted {
		gecho.BadRequest(w, gecho.WithMessage(fmt.Sprintf("Video with ID %d not found.", id)), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage(fmt.Sprintf("Video with ID %d deleted.", id)), gecho.Send())
}
