package lib

import (
	"creativehands_server/structs"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateToken issues a signed HS256 token for the given user.
func GenerateToken(userName, role string, cfg *structs.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"name": userName,
		"role": role,
		"iss":  cfg.Issuer,
		"aud":  cfg.Audience,
		"iat":  now.Unix(),
		"exp":  now.Add(cfg.TokenExpiry).Unix(),
		"jti":  uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JwtSecret))
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, cfg *structs.AuthConfig) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JwtSecret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// Safely extract and validate claims
		name, ok := claims["name"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid name claim")
		}

		role, ok := claims["role"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid role claim")
		}

		iat, ok := claims["iat"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid iat claim")
		}

		exp, ok := claims["exp"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid exp claim")
		}

		jtiStr, ok := claims["jti"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid jti claim")
		}

		jti, err := uuid.Parse(jtiStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
		}

		return &structs.AuthClaims{
			Name: name,
			Role: role,
			Iat:  time.Unix(int64(iat), 0),
			Exp:  time.Unix(int64(exp), 0),
			Jti:  jti,
		}, nil
	}
	return nil, ErrInvalidToken
}

// ExtractClaims reads the bearer token from the Authorization header and
// returns its validated claims.
func ExtractClaims(r *http.Request, cfg *structs.AuthConfig) (*structs.AuthClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrInvalidToken
	}

	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return nil, ErrInvalidToken
	}

	return ParseToken(tokenStr, cfg)
}
