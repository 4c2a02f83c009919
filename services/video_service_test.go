package services

import (
	"context"
	"strings"
	"testing"

	"creativehands_server/database"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoService(t *testing.T) (*VideoService, *database.DB, *fakeFtpClient) {
	t.Helper()
	db := newTestDB(t)
	ftp := newFakeFtp()
	return NewVideoService(newTestLogger(), newTestConfig(), db, ftp), db, ftp
}

func seedVideo(t *testing.T, db *database.DB, v tables.Video) int64 {
	t.Helper()
	created, err := database.Query[tables.Video](db).Insert(context.Background(), &v)
	require.NoError(t, err)
	return created.Id
}

func TestGetVideosFilters(t *testing.T) {
	svc, db, _ := newVideoService(t)
	ctx := context.Background()

	rows, err := svc.GetVideos(ctx, &structs.GetVideosRequest{})
	require.NoError(t, err)
	assert.Nil(t, rows)

	first := seedVideo(t, db, tables.Video{
		Name:      "springBouquet",
		Extension: "mp4",
		Title:     ptr("Spring bouquet tutorial"),
	})
	second := seedVideo(t, db, tables.Video{
		Name:        "winterWreath",
		Extension:   "mov",
		Description: ptr("wreath assembly, step by step"),
	})

	rows, err = svc.GetVideos(ctx, &structs.GetVideosRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first, rows[0].Id)
	assert.Equal(t, second, rows[1].Id)

	rows, err = svc.GetVideos(ctx, &structs.GetVideosRequest{VideoName: "spring"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "springBouquet", rows[0].VideoName)

	rows, err = svc.GetVideos(ctx, &structs.GetVideosRequest{Title: "bouquet"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = svc.GetVideos(ctx, &structs.GetVideosRequest{Description: "assembly"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].Id)

	rows, err = svc.GetVideos(ctx, &structs.GetVideosRequest{Id: second, VideoName: "spring"})
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestSaveVideoInsert(t *testing.T) {
	svc, db, ftp := newVideoService(t)
	ctx := context.Background()

	resp, err := svc.SaveVideo(ctx, strings.NewReader("bytes"), "raw-upload.mp4", &structs.SaveVideoRequest{
		VideoName: "Spring Flowers",
		Title:     ptr("Spring flowers"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Greater(t, resp.VideoId, int64(0))
	assert.Equal(t, []string{"springFlowers.mp4"}, resp.UploadedImages)
	assert.Equal(t, []string{"springFlowers.mp4"}, ftp.files[videoUploadFolder])

	row, err := database.Query[tables.Video](db).Where("id", resp.VideoId).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "springFlowers", row.Name)
	assert.Equal(t, "mp4", row.Extension)
	require.NotNil(t, row.Title)
	assert.Equal(t, "Spring flowers", *row.Title)
}

func TestSaveVideoRejectsMissingExtension(t *testing.T) {
	svc, db, _ := newVideoService(t)
	ctx := context.Background()

	resp, err := svc.SaveVideo(ctx, strings.NewReader("bytes"), "no-extension", &structs.SaveVideoRequest{VideoName: "x"})
	require.NoError(t, err)
	assert.Nil(t, resp)

	resp, err = svc.SaveVideo(ctx, nil, "file.mp4", &structs.SaveVideoRequest{VideoName: "x"})
	require.NoError(t, err)
	assert.Nil(t, resp)

	count, err := database.Query[tables.Video](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSaveVideoUpdate(t *testing.T) {
	svc, db, ftp := newVideoService(t)
	ctx := context.Background()

	id := seedVideo(t, db, tables.Video{Name: "oldName", Extension: "mp4", Title: ptr("old")})

	resp, err := svc.SaveVideo(ctx, strings.NewReader("bytes"), "replacement.mov", &structs.SaveVideoRequest{
		Id:        id,
		VideoName: "New Display Name",
		Title:     ptr("new title"),
		Extension: "mov",
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, id, resp.VideoId)
	// the shipped file still uses the camel-cased name
	assert.Equal(t, []string{"newDisplayName.mov"}, ftp.files[videoUploadFolder])

	row, err := database.Query[tables.Video](db).Where("id", id).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	// the stored row keeps the raw request name on update
	assert.Equal(t, "New Display Name", row.Name)
	assert.Equal(t, "mov", row.Extension)
	require.NotNil(t, row.Title)
	assert.Equal(t, "new title", *row.Title)
}

func TestSaveVideoUpdateUnknownId(t *testing.T) {
	svc, db, ftp := newVideoService(t)
	ctx := context.Background()

	resp, err := svc.SaveVideo(ctx, strings.NewReader("bytes"), "f.mp4", &structs.SaveVideoRequest{
		Id:        404,
		VideoName: "ghost",
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, ftp.files[videoUploadFolder])

	count, err := database.Query[tables.Video](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSaveVideoUploadFailureKeepsRow(t *testing.T) {
	svc, db, ftp := newVideoService(t)
	ftp.failUpload = true
	ctx := context.Background()

	resp, err := svc.SaveVideo(ctx, strings.NewReader("bytes"), "f.mp4", &structs.SaveVideoRequest{VideoName: "keeper"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Empty(t, resp.UploadedImages)

	count, err := database.Query[tables.Video](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteVideo(t *testing.T) {
	svc, db, ftp := newVideoService(t)
	ctx := context.Background()

	ok, err := svc.DeleteVideo(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)

	id := seedVideo(t, db, tables.Video{Name: "gone", Extension: "mp4"})
	ftp.files[videoDeleteFolder] = []string{"gone.mp4", "stays.mp4"}

	ok, err = svc.DeleteVideo(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := database.Query[tables.Video](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, []string{"stays.mp4"}, ftp.files[videoDeleteFolder])
}
