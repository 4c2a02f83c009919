package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"runtime/debug"

	"creativehands_server/database"
	"creativehands_server/lib"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	videoUploadFolder = "videos"
	// Deletes historically go through the capitalised folder name. The
	// remote store is case-insensitive, so both resolve to the same
	// directory; kept as-is.
	videoDeleteFolder = "Videos"
)

type VideoService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	ftp    FtpClient
}

func NewVideoService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, ftp FtpClient) *VideoService {
	return &VideoService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		ftp:    ftp,
	}
}

func mapVideo(row *tables.Video) structs.Video {
	return structs.Video{
		Id:          row.Id,
		VideoName:   row.Name,
		Extension:   row.Extension,
		Title:       row.Title,
		Description: row.Description,
	}
}

// GetVideos returns the videos matching every provided filter, or nil
// when nothing matches. Text filters are substring matches.
func (vs *VideoService) GetVideos(ctx context.Context, req *structs.GetVideosRequest) ([]structs.Video, error) {
	query := database.Query[tables.Video](vs.db)

	if req.Id > 0 {
		query = query.Where("id", req.Id)
	}
	if req.VideoName != "" {
		query = query.WhereLike("name", "%"+req.VideoName+"%")
	}
	if req.Title != "" {
		query = query.WhereLike("title", "%"+req.Title+"%")
	}
	if req.Description != "" {
		query = query.WhereLike("description", "%"+req.Description+"%")
	}

	rows, err := query.OrderBy("id", database.ASC).All(ctx)
	if err != nil {
		vs.logger.Error("Failed to query videos", gecho.Field("error", err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	videos := make([]structs.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, mapVideo(&rows[i]))
	}
	return videos, nil
}

// SaveVideo persists the catalog row and ships the file to the remote
// store. The stored name is the camel-cased video name plus the upload's
// extension. A nil response means the request could not be applied: no
// file extension, or an update aimed at a row that does not exist.
func (vs *VideoService) SaveVideo(ctx context.Context, file io.Reader, fileName string, req *structs.SaveVideoRequest) (resp *structs.UploadFilesResponse, err error) {
	if file == nil {
		return nil, nil
	}
	extWithDot := path.Ext(fileName)
	if extWithDot == "" {
		return nil, nil
	}

	trimmed := lib.ToCamelFileName(req.VideoName)
	storedName := trimmed + extWithDot

	tx, err := vs.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			vs.logger.Error("Panic during video save",
				gecho.Field("panic", p),
				gecho.Field("stack", string(debug.Stack())))
			err = fmt.Errorf("panic recovered: %v", p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var videoId int64
	if req.Id <= 0 {
		row := &tables.Video{
			Name:        trimmed,
			Extension:   extWithDot[1:],
			Title:       req.Title,
			Description: req.Description,
		}
		if _, err = tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return nil, err
		}
		videoId = row.Id
	} else {
		var row tables.Video
		err = tx.NewSelect().Model(&row).Where("id = ?", req.Id).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = nil
				return nil, nil
			}
			return nil, err
		}

		// updates keep the raw request name rather than the camel-cased
		// one; only blank names fall back to the stored value
		if req.VideoName != "" {
			row.Name = req.VideoName
		}
		row.Title = req.Title
		row.Description = req.Description
		if req.Extension != "" {
			row.Extension = req.Extension
		}
		if _, err = tx.NewUpdate().Model(&row).WherePK().Exec(ctx); err != nil {
			return nil, err
		}
		videoId = row.Id
	}

	resp = &structs.UploadFilesResponse{
		VideoId:        videoId,
		UploadedImages: []string{},
	}
	if upErr := vs.ftp.Upload(videoUploadFolder, storedName, file); upErr != nil {
		vs.logger.Warn("Video file upload failed",
			gecho.Field("name", storedName),
			gecho.Field("error", upErr))
	} else {
		resp.UploadedImages = append(resp.UploadedImages, storedName)
	}
	return resp, nil
}

// DeleteVideo removes the catalog row and then tries to remove the file
// from the remote store. File-store failures are logged but do not undo
// the delete.
func (vs *VideoService) DeleteVideo(ctx context.Context, videoId int64) (bool, error) {
	row, err := database.Query[tables.Video](vs.db).
		Where("id", videoId).
		First(ctx)
	if err != nil {
		vs.logger.Error("Failed to load video for delete",
			gecho.Field("videoId", videoId),
			gecho.Field("error", err))
		return false, err
	}
	if row == nil {
		return false, nil
	}

	if _, err := database.Query[tables.Video](vs.db).Where("id", videoId).Delete(ctx); err != nil {
		vs.logger.Error("Failed to delete video",
			gecho.Field("videoId", videoId),
			gecho.Field("error", err))
		return false, err
	}

	if row.Name != "" && row.Extension != "" {
		fileName := row.Name + "." + row.Extension
		if failed, err := vs.ftp.Delete(videoDeleteFolder, []string{fileName}); err != nil || len(failed) > 0 {
			vs.logger.Warn("Video file removal failed",
				gecho.Field("name", fileName),
				gecho.Field("error", err))
		}
	}
	return true, nil
}
