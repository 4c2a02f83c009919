package services

import (
	"context"
	"testing"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestConfig(), newTestLogger(), newTestDB(t))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &structs.RegisterRequest{
		UserName: "ana",
		Password: "correct horse",
		FullName: ptr("Ana P."),
		IsAdmin:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Greater(t, user.Id, int64(0))
	assert.Equal(t, "ana", user.UserName)
	assert.True(t, user.IsAdmin)

	resp, err := svc.Login(ctx, &structs.LoginRequest{UserName: "ana", Password: "correct horse"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "ana", resp.User.UserName)
	assert.True(t, resp.User.IsAdmin)

	claims, err := lib.ParseToken(resp.Token, newTestConfig().Auth)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Name)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginNonAdminRole(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &structs.RegisterRequest{UserName: "bo", Password: "pw123456"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &structs.LoginRequest{UserName: "bo", Password: "pw123456"})
	require.NoError(t, err)

	claims, err := lib.ParseToken(resp.Token, newTestConfig().Auth)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &structs.RegisterRequest{UserName: "ana", Password: "correct horse"})
	require.NoError(t, err)

	// unknown user and wrong password fail identically
	_, err = svc.Login(ctx, &structs.LoginRequest{UserName: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &structs.LoginRequest{UserName: "ana", Password: "wrong horse"})
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestRegisterDuplicateUserName(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &structs.RegisterRequest{UserName: "ana", Password: "pw123456"})
	require.NoError(t, err)

	// the conflict sentinel comes from postgres SQLSTATE mapping; under
	// sqlite the raw constraint error surfaces instead
	_, err = svc.Register(ctx, &structs.RegisterRequest{UserName: "ana", Password: "other pw"})
	assert.Error(t, err)
}
