// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"

	apiError "github.com/Parker-ink/foodgram-project-react/internal/api/error"
	"github.com/Parker-ink/foodgram-project-react/internal/api/requestid"
	"github.com/Parker-ink/foodgram-project-react/internal/api/token"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	fgJwt "github.com/Parker-ink/foodgram-project-react/internal/jwt"
	"github.com/Parker-ink/foodgram-project-react/internal/log"
	"github.com/Parker-ink/foodgram-project-react/internal/role"

	"github.com/oklog/ulid/v2"
)

type requestIDKeyType struct{}

var requestIDKey requestIDKeyType

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			requestID := r.Context().Value(requestIDKey)
			if id, ok := requestID.(uint64); ok {
				return []slog.Attr{slog.Uint64("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")

		// In dev mode any origin is allowed; in prod only the host origin.
		allowedOrigin := e.Config.HostOrigin
		if e.Config.Env != config.EnvProd && origin != "" {
			allowedOrigin = origin
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthorizeRequest creates a middleware that validates the access token,
// loads the user, and checks the required role.
func AuthorizeRequest(requiredRole role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := env.EnvFromCtx(r.Context())
			requestID := fmt.Sprintf("%d", requestid.ExtractRequestID(r.Context()))

			user, code, err := authenticate(r, env)
			if err != nil {
				env.Logger.ErrorContext(r.Context(), "failed to authenticate request", slog.Any("error", err))
				_ = apiError.EncodeError(w, code, err.Error(), requestID)
				return
			}

			if !role.DBToRole(user.Role).Meets(requiredRole) {
				env.Logger.ErrorContext(r.Context(), "user does not have required role",
					slog.String("user-role", string(user.Role)),
					slog.String("required-role", requiredRole.String()))
				_ = apiError.EncodeError(w, apiError.InsufficientPermissions, "insufficient permissions", requestID)
				return
			}

			r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", user.ID)))
			r = r.WithContext(token.UserWithCtx(r.Context(), user))
			next.ServeHTTP(w, r)
		})
	}
}

// MaybeAuthorizeRequest attaches the user when a valid access token is
// present and lets the request through anonymously otherwise. Read
// endpoints use it to compute per-viewer flags.
func MaybeAuthorizeRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := env.EnvFromCtx(r.Context())

		user, _, err := authenticate(r, env)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", user.ID)))
		r = r.WithContext(token.UserWithCtx(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

func authenticate(r *http.Request, e *env.Env) (database.User, apiError.ErrorCode, error) {
	accessToken, err := r.Cookie(token.AccessTokenName(e))
	if err != nil {
		return database.User{}, apiError.InvalidAccessToken, errors.New("missing access token")
	}

	secret := e.Config.AppSecret.Value
	if secret == "" {
		return database.User{}, apiError.InternalServerError, errors.New("app secret not configured")
	}

	accessJwt, err := fgJwt.ValidateJWT(accessToken.Value, e.Config.AppSecret.Version, []byte(secret))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return database.User{}, apiError.ExpiredAccessToken, errors.New("access token expired")
	} else if err != nil {
		return database.User{}, apiError.InvalidAccessToken, errors.New("invalid access token")
	}

	sub, err := accessJwt.Claims.GetSubject()
	if err != nil {
		return database.User{}, apiError.InvalidAccessToken, fmt.Errorf("extracting subject: %w", err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return database.User{}, apiError.InvalidAccessToken, fmt.Errorf("parsing user id: %w", err)
	}

	user, err := e.Database.GetUserByID(r.Context(), userID)
	if errors.Is(err, database.ErrNotFound) {
		return database.User{}, apiError.InvalidAccessToken, errors.New("token subject no longer exists")
	} else if err != nil {
		return database.User{}, apiError.InternalServerError, fmt.Errorf("fetching user: %w", err)
	}
	return user, apiError.UnknownError, nil
}
