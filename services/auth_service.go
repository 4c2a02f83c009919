package services

import (
	"context"
	"errors"
	"time"

	"creativehands_server/database"
	"creativehands_server/lib"
	"creativehands_server/structs"
	"creativehands_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type AuthService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB) *AuthService {
	return &AuthService{
		logger: logger,
		cfg:    cfg,
		db:     db,
	}
}

// Login verifies the credentials and issues a signed token. Any lookup
// or verification failure surfaces as ErrInvalidCredentials so user
// existence does not leak.
func (as *AuthService) Login(ctx context.Context, req *structs.LoginRequest) (*structs.LoginResponse, error) {
	startTime := time.Now()

	user, err := database.Query[tables.User](as.db).Where("user_name", req.UserName).First(ctx)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if !errors.Is(mappedErr, lib.ErrNotFound) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr))
		}
		return nil, lib.ErrInvalidCredentials
	}
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("user_name", req.UserName))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id))
		return nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("user_name", req.UserName),
			gecho.Field("user_id", user.Id))
		return nil, lib.ErrInvalidCredentials
	}

	role := RoleUser
	if user.IsAdmin {
		role = RoleAdmin
	}

	token, err := lib.GenerateToken(user.UserName, role, as.cfg.Auth)
	if err != nil {
		as.logger.Error("Failed to sign token", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	as.logger.Debug("User logged in successfully",
		gecho.Field("user_id", user.Id),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()))

	return &structs.LoginResponse{
		Token: token,
		User: structs.LoginUser{
			Id:       user.Id,
			UserName: user.UserName,
			FullName: user.FullName,
			IsAdmin:  user.IsAdmin,
		},
	}, nil
}

// Register creates a user with an argon2id password hash.
func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*structs.LoginUser, error) {
	passwordHash, err := lib.HashPassword(req.Password, lib.DefaultArgonParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user := &tables.User{
		UserName:     req.UserName,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		IsAdmin:      req.IsAdmin,
	}
	user, err = database.Query[tables.User](as.db).Insert(ctx, user)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if errors.Is(mappedErr, lib.ErrConflict) {
			as.logger.Warn("Registration failed - duplicate user",
				gecho.Field("user_name", req.UserName))
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("user_name", req.UserName))
		}
		return nil, mappedErr
	}

	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id))

	return &structs.LoginUser{
		Id:       user.Id,
		UserName: user.UserName,
		FullName: user.FullName,
		IsAdmin:  user.IsAdmin,
	}, nil
}
