package auth

import (
	"errors"
	"net/http"

	"creativehands_server/lib"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

func (ar *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if body.UserName == "" || body.Password == "" {
		ar.logger.Warn("Missing required fields in login")
		gecho.BadRequest(w, gecho.WithMessage("Username and password are required"), gecho.Send())
		return
	}

	resp, err := ar.authService.Login(r.Context(), body)
	if err != nil {
		if !errors.Is(err, lib.ErrInvalidCredentials) {
			ar.logger.Error("Login failed", gecho.Field("error", err))
		}
		gecho.Unauthorized(w, gecho.WithMessage("Invalid username or password."), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}

func (ar *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid registration data"), gecho.Send())
		return
	}

	if body.UserName == "" || body.Password == "" {
		gecho.BadRequest(w, gecho.WithMessage("Username and password are required"), gecho.Send())
		return
	}

	user, err := ar.authService.Register(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("Username is already taken"), gecho.Send())
			return
		}
		ar.logger.Error("Registration failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to register the user"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User registered"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
