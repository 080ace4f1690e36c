package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Parker-ink/foodgram-project-react/internal/argon2id"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/database/memory"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
)

const testPassword = "Tr0ub4dor&horse"

func loginEnv(t *testing.T) *env.Env {
	t.Helper()
	store := memory.New()

	hash, err := argon2id.EncodeHash(testPassword, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if _, err := store.CreateUser(t.Context(), database.CreateUserParams{
		Email: "user@example.com", Username: "user",
		FirstName: "first", LastName: "last",
		PasswordHash: hash, Role: database.RoleUser,
	}); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	return env.New(nil, store, nil, config.Config{
		AppSecret: config.AppSecret{Value: "test-secret", Version: "1"},
	})
}

func postLogin(t *testing.T, e *env.Env, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(env.WithCtx(req.Context(), e))
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	e := loginEnv(t)

	rec := postLogin(t, e, `{"email":"user@example.com","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AuthToken == "" {
		t.Error("expected a token in the response body")
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access" && c.Value == resp.AuthToken && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("expected an http-only access cookie matching the body token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := loginEnv(t)

	rec := postLogin(t, e, `{"email":"user@example.com","password":"WrongPass1!x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	e := loginEnv(t)

	rec := postLogin(t, e, `{"email":"nobody@example.com","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRejectsUnknownFields(t *testing.T) {
	e := loginEnv(t)

	rec := postLogin(t, e, `{"email":"user@example.com","password":"x","extra":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	e := loginEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/logout", nil)
	req = req.WithContext(env.WithCtx(req.Context(), e))
	rec := httptest.NewRecorder()
	HandleLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the access cookie to be expired")
	}
}
