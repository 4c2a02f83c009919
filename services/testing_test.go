package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"creativehands_server/database"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each
// test gets its own named database so parallel tests cannot collide.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := database.New(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	models := []any{
		(*tables.Order)(nil),
		(*tables.OrderItem)(nil),
		(*tables.OrderItemColour)(nil),
		(*tables.Customer)(nil),
		(*tables.Product)(nil),
		(*tables.Category)(nil),
		(*tables.ProductCategory)(nil),
		(*tables.ProductVariation)(nil),
		(*tables.ProductAvailableColour)(nil),
		(*tables.Image)(nil),
		(*tables.Purchase)(nil),
		(*tables.PurchaseImage)(nil),
		(*tables.Provider)(nil),
		(*tables.Video)(nil),
		(*tables.User)(nil),
	}
	for _, model := range models {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	// the reserved guest customer row exists in production data; carts
	// point at it until send-time
	guest := &tables.Customer{Id: tables.GuestCustomerId, Name: "Guest", Tel1: ""}
	_, err = db.NewInsert().Model(guest).Exec(ctx)
	require.NoError(t, err)

	return db
}

func newTestLogger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}

func newTestConfig() *structs.Config {
	return &structs.Config{
		Server: &structs.ServerConfig{
			AppName:     "creativehands-test",
			Environment: "development",
		},
		Auth: &structs.AuthConfig{
			JwtSecret:   "test-secret-test-secret-test-secret",
			Issuer:      "creativehands-test",
			Audience:    "creativehands-test-clients",
			TokenExpiry: 12 * time.Hour,
		},
		Cache: &structs.CacheConfig{
			ProductTTL: 10 * time.Minute,
		},
		Ftp:   &structs.FtpConfig{},
		Email: &structs.EmailConfig{},
	}
}

func ptr[T any](v T) *T {
	return &v
}

// fakeFtpClient is an in-memory FtpClient for the upload flows.
type fakeFtpClient struct {
	files      map[string][]string // folder -> stored names
	failUpload bool
}

func newFakeFtp() *fakeFtpClient {
	return &fakeFtpClient{files: make(map[string][]string)}
}

func (f *fakeFtpClient) Upload(folder, name string, data io.Reader) error {
	if f.failUpload {
		return errors.New("stor failed")
	}
	if data != nil {
		if _, err := io.Copy(io.Discard, data); err != nil {
			return err
		}
	}
	f.files[folder] = append(f.files[folder], name)
	return nil
}

func (f *fakeFtpClient) ListWithPrefix(folder, prefix string) ([]string, error) {
	var names []string
	lowered := strings.ToLower(prefix)
	for _, name := range f.files[folder] {
		if strings.HasPrefix(strings.ToLower(name), lowered) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (f *fakeFtpClient) Delete(folder string, names []string) ([]string, error) {
	remove := make(map[string]bool, len(names))
	for _, name := range names {
		remove[name] = true
	}
	var kept []string
	for _, name := range f.files[folder] {
		if !remove[name] {
			kept = append(kept, name)
		}
	}
	f.files[folder] = kept
	return nil, nil
}
