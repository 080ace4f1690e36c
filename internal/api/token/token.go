// Package token contains utilities for http tokens.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/jwt"
)

// Cookie max-age tracks the token lifetime so the browser drops the
// cookie when the token expires.
var accessTokenLifetime = int(jwt.DefaultLifetime.Seconds())

var ErrNoUser = errors.New("no authenticated user in context")

func AccessTokenName(e *env.Env) string {
	if e.Config.Env == config.EnvProd {
		return "__Host-Http-access"
	}
	return "access"
}

// NewAccessToken signs a JWT for the user with the configured app secret.
func NewAccessToken(params jwt.JWTParams, e *env.Env) (string, error) {
	secret := e.Config.AppSecret.Value
	if secret == "" {
		return "", errors.New("app secret not configured")
	}
	token, err := jwt.GenerateJWT(params, []byte(secret), e.Config.AppSecret.Version)
	if err != nil {
		return "", fmt.Errorf("generating access token: %w", err)
	}
	return token, nil
}

func NewAccessTokenCookie(token string, e *env.Env) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   e.Config.Env == config.EnvProd,
	}
}

// ExpireAccessTokenCookie returns a cookie that clears the access token.
func ExpireAccessTokenCookie(e *env.Env) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   e.Config.Env == config.EnvProd,
	}
}

type userKeyType struct{}

var userKey userKeyType

// UserWithCtx stores the authenticated user in the context.
func UserWithCtx(ctx context.Context, u database.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromCtx returns the authenticated user, or ErrNoUser when the
// request was not authenticated.
func UserFromCtx(ctx context.Context) (database.User, error) {
	if u, ok := ctx.Value(userKey).(database.User); ok {
		return u, nil
	}
	return database.User{}, ErrNoUser
}

// ViewerFromCtx returns the authenticated user or nil. Handlers that
// serve anonymous readers use it to compute per-viewer flags.
func ViewerFromCtx(ctx context.Context) *database.User {
	if u, ok := ctx.Value(userKey).(database.User); ok {
		return &u
	}
	return nil
}
