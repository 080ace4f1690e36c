package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Parker-ink/foodgram-project-react/internal/api/requestid"
	"github.com/Parker-ink/foodgram-project-react/internal/api/token"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/database/memory"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/jwt"
	"github.com/Parker-ink/foodgram-project-react/internal/role"
)

func testEnv(t *testing.T) (*env.Env, database.User) {
	t.Helper()
	store := memory.New()

	userID, err := store.CreateUser(t.Context(), database.CreateUserParams{
		Email: "user@example.com", Username: "user",
		FirstName: "first", LastName: "last",
		PasswordHash: "hash", Role: database.RoleUser,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	user, err := store.GetUserByID(t.Context(), userID)
	if err != nil {
		t.Fatalf("fetching user: %v", err)
	}

	conf := config.Config{
		AppSecret:  config.AppSecret{Value: "test-secret", Version: "1"},
		HostOrigin: "http://localhost:8080",
		Env:        config.EnvDev,
	}
	return env.New(nil, store, nil, conf), user
}

func TestAddRequestID(t *testing.T) {
	var got uint64
	handler := AddRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestid.ExtractRequestID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if got == 0 {
		t.Error("expected a request id to be injected")
	}
}

func TestAddCorsPreflight(t *testing.T) {
	e, _ := testEnv(t)
	handler := InjectEnv(e)(AddCors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run on preflight")
	})))

	req := httptest.NewRequest(http.MethodOptions, "/api/recipes", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 on preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Errorf("expected dev mode to echo the origin, got %q", got)
	}
}

func TestAuthorizeRequestMissingToken(t *testing.T) {
	e, _ := testEnv(t)
	handler := InjectEnv(e)(AuthorizeRequest(role.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without a token")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthorizeRequestValidToken(t *testing.T) {
	e, user := testEnv(t)

	accessToken, err := token.NewAccessToken(jwt.JWTParams{
		Role:   role.DBToRole(user.Role).String(),
		UserID: fmt.Sprintf("%d", user.ID),
	}, e)
	if err != nil {
		t.Fatalf("creating token: %v", err)
	}

	var got database.User
	handler := InjectEnv(e)(AuthorizeRequest(role.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err = token.UserFromCtx(r.Context())
		if err != nil {
			t.Errorf("expected user in context: %v", err)
		}
	})))

	req := httptest.NewRequest("GET", "/api/users/me", nil)
	req.AddCookie(token.NewAccessTokenCookie(accessToken, e))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %d in context, got %d", user.ID, got.ID)
	}
}

func TestAuthorizeRequestInsufficientRole(t *testing.T) {
	e, user := testEnv(t)

	accessToken, err := token.NewAccessToken(jwt.JWTParams{
		Role:   role.DBToRole(user.Role).String(),
		UserID: fmt.Sprintf("%d", user.ID),
	}, e)
	if err != nil {
		t.Fatalf("creating token: %v", err)
	}

	handler := InjectEnv(e)(AuthorizeRequest(role.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for insufficient role")
	})))

	req := httptest.NewRequest("POST", "/api/admin/tags", nil)
	req.AddCookie(token.NewAccessTokenCookie(accessToken, e))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestMaybeAuthorizeRequestAnonymous(t *testing.T) {
	e, _ := testEnv(t)

	var viewer *database.User
	handler := InjectEnv(e)(MaybeAuthorizeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer = token.ViewerFromCtx(r.Context())
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/recipes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected anonymous request to pass, got %d", rec.Code)
	}
	if viewer != nil {
		t.Errorf("expected nil viewer, got %+v", viewer)
	}
}
