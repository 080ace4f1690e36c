package users

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Parker-ink/foodgram-project-react/internal/api/token"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/database/memory"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
)

func newUser(t *testing.T, store database.Store, email, username string) database.User {
	t.Helper()
	id, err := store.CreateUser(t.Context(), database.CreateUserParams{
		Email: email, Username: username,
		FirstName: "first", LastName: "last",
		PasswordHash: "hash", Role: database.RoleUser,
	})
	if err != nil {
		t.Fatalf("creating user %s: %v", username, err)
	}
	user, err := store.GetUserByID(t.Context(), id)
	if err != nil {
		t.Fatalf("fetching user %s: %v", username, err)
	}
	return user
}

func usersRouter(e *env.Env, user *database.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := env.WithCtx(req.Context(), e)
			if user != nil {
				ctx = token.UserWithCtx(ctx, *user)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/api/users", HandleCreateUser)
	r.Get("/api/users", HandleListUsers)
	r.Get("/api/users/me", HandleGetMe)
	r.Get("/api/users/subscriptions", HandleListSubscriptions)
	r.Get("/api/users/{id:[0-9]+}", HandleGetUser)
	r.Post("/api/users/{id:[0-9]+}/subscribe", HandleSubscribe)
	r.Delete("/api/users/{id:[0-9]+}/subscribe", HandleUnsubscribe)
	return r
}

func request(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateUser(t *testing.T) {
	store := memory.New()
	router := usersRouter(env.New(nil, store, nil, config.Config{}), nil)

	body := `{"email":"new@example.com","username":"newuser","first_name":"New","last_name":"User","password":"Tr0ub4dor&horse"}`
	rec := request(t, router, http.MethodPost, "/api/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if created.Email != "new@example.com" || created.Username != "newuser" {
		t.Errorf("unexpected response: %+v", created)
	}

	user, err := store.GetUserByID(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("fetching created user: %v", err)
	}
	if user.PasswordHash == "Tr0ub4dor&horse" || !strings.HasPrefix(user.PasswordHash, "$argon2id$") {
		t.Error("expected the stored password to be an argon2id hash")
	}

	// Same email again conflicts.
	if rec = request(t, router, http.MethodPost, "/api/users", body); rec.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate, got %d", rec.Code)
	}
}

func TestCreateUserWeakPassword(t *testing.T) {
	router := usersRouter(env.New(nil, memory.New(), nil, config.Config{}), nil)

	body := `{"email":"new@example.com","username":"newuser","first_name":"New","last_name":"User","password":"password"}`
	rec := request(t, router, http.MethodPost, "/api/users", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestSubscribeFlow(t *testing.T) {
	store := memory.New()
	e := env.New(nil, store, nil, config.Config{})
	follower := newUser(t, store, "follower@example.com", "follower")
	author := newUser(t, store, "author@example.com", "author")
	router := usersRouter(e, &follower)

	path := fmt.Sprintf("/api/users/%d/subscribe", author.ID)
	rec := request(t, router, http.MethodPost, path, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var sub struct {
		ID           int64 `json:"id"`
		IsSubscribed bool  `json:"is_subscribed"`
		RecipesCount int   `json:"recipes_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if sub.ID != author.ID || !sub.IsSubscribed || sub.RecipesCount != 0 {
		t.Errorf("unexpected subscription payload: %+v", sub)
	}

	if rec = request(t, router, http.MethodPost, path, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on duplicate subscribe, got %d", rec.Code)
	}

	rec = request(t, router, http.MethodGet, "/api/users/subscriptions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page struct {
		Count   int               `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if page.Count != 1 {
		t.Errorf("expected one subscription, got %d", page.Count)
	}

	if rec = request(t, router, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 on unsubscribe, got %d", rec.Code)
	}
	if rec = request(t, router, http.MethodDelete, path, ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on repeated unsubscribe, got %d", rec.Code)
	}
}

func TestSelfSubscribeRejected(t *testing.T) {
	store := memory.New()
	e := env.New(nil, store, nil, config.Config{})
	user := newUser(t, store, "user@example.com", "user")
	router := usersRouter(e, &user)

	rec := request(t, router, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", user.ID), "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on self subscribe, got %d", rec.Code)
	}
}

func TestGetMe(t *testing.T) {
	store := memory.New()
	e := env.New(nil, store, nil, config.Config{})
	user := newUser(t, store, "user@example.com", "user")
	router := usersRouter(e, &user)

	rec := request(t, router, http.MethodGet, "/api/users/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var me struct {
		ID           int64 `json:"id"`
		IsSubscribed bool  `json:"is_subscribed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if me.ID != user.ID || me.IsSubscribed {
		t.Errorf("unexpected profile: %+v", me)
	}
}
