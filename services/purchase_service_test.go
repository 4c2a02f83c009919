package services

import (
	"context"
	"testing"

	"creativehands_server/database"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseService(t *testing.T) (*PurchaseService, *database.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPurchaseService(newTestLogger(), newTestConfig(), db), db
}

func TestSavePurchaseBadDate(t *testing.T) {
	svc, _ := newPurchaseService(t)

	id := svc.SavePurchase(context.Background(), &structs.PurchaseIn{
		ProviderId: 1,
		Amount:     10,
		CreateDate: "2026-03-15", // ISO, not the dd/MM/yyyy wire format
	})
	assert.Equal(t, int64(-1), id)
}

func TestSavePurchaseInsertAndUpdate(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	id := svc.SavePurchase(ctx, &structs.PurchaseIn{
		ProviderId:  3,
		Amount:      49.90,
		CreateDate:  "15/03/2026",
		Description: ptr("ribbon spools"),
		Image:       ptr("receipt.png"),
	})
	require.Greater(t, id, int64(0))

	got, err := svc.GetPurchaseById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ProviderId)
	assert.Equal(t, 49.90, got.Amount)
	assert.Equal(t, "15/03/2026", got.CreateDate)
	require.NotNil(t, got.Description)
	assert.Equal(t, "ribbon spools", *got.Description)

	// the attached receipt filename records its extension
	image, err := database.Query[tables.PurchaseImage](db).Where("purchase_id", id).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, image)
	assert.Equal(t, "png", image.Extension)

	updatedId := svc.SavePurchase(ctx, &structs.PurchaseIn{
		Id:         id,
		ProviderId: 4,
		Amount:     55,
		CreateDate: "01/04/2026",
	})
	assert.Equal(t, id, updatedId)

	got, err = svc.GetPurchaseById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ProviderId)
	assert.Equal(t, 55.0, got.Amount)
	assert.Equal(t, "01/04/2026", got.CreateDate)

	count, err := database.Query[tables.Purchase](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSavePurchaseUnknownIdInserts(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	id := svc.SavePurchase(ctx, &structs.PurchaseIn{
		Id:         777,
		ProviderId: 1,
		Amount:     5,
		CreateDate: "02/02/2026",
	})
	require.Greater(t, id, int64(0))

	count, err := database.Query[tables.Purchase](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetPurchasesFilters(t *testing.T) {
	svc, _ := newPurchaseService(t)
	ctx := context.Background()

	winter := svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 1, Amount: 10, CreateDate: "10/01/2024"})
	summer := svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 1, Amount: 20, CreateDate: "10/06/2024"})
	autumn := svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 2, Amount: 30, CreateDate: "10/12/2024"})
	require.Greater(t, winter, int64(0))
	require.Greater(t, summer, int64(0))
	require.Greater(t, autumn, int64(0))

	rows, err := svc.GetPurchases(ctx, &structs.GetPurchasesRequest{Id: &summer})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, summer, rows[0].Id)

	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{ProviderId: ptr(int64(1))})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// no matches collapse to nil so callers can answer not-found
	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{ProviderId: ptr(int64(99))})
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestGetPurchasesDateRange(t *testing.T) {
	svc, _ := newPurchaseService(t)
	ctx := context.Background()

	svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 1, Amount: 10, CreateDate: "10/01/2024"})
	svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 1, Amount: 20, CreateDate: "10/06/2024"})
	svc.SavePurchase(ctx, &structs.PurchaseIn{ProviderId: 1, Amount: 30, CreateDate: "10/12/2024"})

	rows, err := svc.GetPurchases(ctx, &structs.GetPurchasesRequest{FromDate: ptr("01/05/2024")})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// a lower bound at or before the minimum date is ignored
	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{FromDate: ptr("01/01/1999")})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{ToDate: ptr("01/05/2024")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10/01/2024", rows[0].CreateDate)

	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{
		FromDate: ptr("01/05/2024"),
		ToDate:   ptr("01/11/2024"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10/06/2024", rows[0].CreateDate)

	// unparseable bounds are dropped rather than failing the search
	rows, err = svc.GetPurchases(ctx, &structs.GetPurchasesRequest{FromDate: ptr("not-a-date")})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestSaveProviderInsertDefaultsActive(t *testing.T) {
	svc, _ := newPurchaseService(t)
	ctx := context.Background()

	id := svc.SaveProvider(ctx, &structs.ProviderIn{
		Name: "Flor & Co",
		Tel1: ptr("070111222"),
	})
	require.Greater(t, id, int64(0))

	got, err := svc.GetProviderById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Flor & Co", got.Name)
	assert.True(t, got.IsActive)

	inactive := svc.SaveProvider(ctx, &structs.ProviderIn{
		Name:     "Closed Shop",
		IsActive: ptr(false),
	})
	require.Greater(t, inactive, int64(0))

	got, err = svc.GetProviderById(ctx, inactive)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
}

func TestSaveProviderUpdateKeepsActiveFlag(t *testing.T) {
	svc, _ := newPurchaseService(t)
	ctx := context.Background()

	id := svc.SaveProvider(ctx, &structs.ProviderIn{Name: "Flor & Co"})
	require.Greater(t, id, int64(0))

	// a nil IsActive on update leaves the stored flag alone
	updated := svc.SaveProvider(ctx, &structs.ProviderIn{
		Id:      id,
		Name:    "Flor & Co BV",
		Email:   ptr("sales@florco.example"),
		WebSite: ptr("https://florco.example"),
	})
	assert.Equal(t, id, updated)

	got, err := svc.GetProviderById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Flor & Co BV", got.Name)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.Email)
	assert.Equal(t, "sales@florco.example", *got.Email)
	require.NotNil(t, got.WebSite)
	assert.Equal(t, "https://florco.example", *got.WebSite)

	svc.SaveProvider(ctx, &structs.ProviderIn{Id: id, Name: "Flor & Co BV", IsActive: ptr(false)})

	got, err = svc.GetProviderById(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
}

func TestGetProviders(t *testing.T) {
	svc, _ := newPurchaseService(t)
	ctx := context.Background()

	rows, err := svc.GetProviders(ctx)
	require.NoError(t, err)
	assert.Nil(t, rows)

	svc.SaveProvider(ctx, &structs.ProviderIn{Name: "A"})
	svc.SaveProvider(ctx, &structs.ProviderIn{Name: "B"})

	rows, err = svc.GetProviders(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGetProviderByIdAbsent(t *testing.T) {
	svc, _ := newPurchaseService(t)

	got, err := svc.GetProviderById(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteProvider(t *testing.T) {
	svc, db := newPurchaseService(t)
	ctx := context.Background()

	assert.False(t, svc.DeleteProvider(ctx, 404))

	id := svc.SaveProvider(ctx, &structs.ProviderIn{Name: "Gone Soon"})
	require.Greater(t, id, int64(0))

	assert.True(t, svc.DeleteProvider(ctx, id))

	count, err := database.Query[tables.Provider](db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
