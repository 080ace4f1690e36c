// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"fmt"
	"net/http"

	_ "github.com/Parker-ink/foodgram-project-react/docs"
	"github.com/Parker-ink/foodgram-project-react/internal/api/middleware"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/auth"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/ingredients"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/ping"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/recipes"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/tags"
	"github.com/Parker-ink/foodgram-project-react/internal/api/routes/users"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/role"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	serverPort = 8080
)

func addDocs(r *chi.Mux, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux, e *env.Env) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", auth.HandleLogin)
			r.Post("/logout", auth.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreateUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.MaybeAuthorizeRequest)
				r.Get("/", users.HandleListUsers)
				r.Get("/{id:[0-9]+}", users.HandleGetUser)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthorizeRequest(role.RoleUser))
				r.Get("/me", users.HandleGetMe)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{id:[0-9]+}/subscribe", users.HandleSubscribe)
				r.Delete("/{id:[0-9]+}/subscribe", users.HandleUnsubscribe)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{id:[0-9]+}", tags.HandleGetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleListIngredients)
			r.Get("/{id:[0-9]+}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaybeAuthorizeRequest)
				r.Get("/", recipes.HandleListRecipes)
				r.Get("/{id:[0-9]+}", recipes.HandleGetRecipe)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthorizeRequest(role.RoleUser))
				r.Post("/", recipes.HandleCreateRecipe)
				r.Patch("/{id:[0-9]+}", recipes.HandleUpdateRecipe)
				r.Delete("/{id:[0-9]+}", recipes.HandleDeleteRecipe)
				r.Post("/{id:[0-9]+}/favorite", recipes.HandleAddFavorite)
				r.Delete("/{id:[0-9]+}/favorite", recipes.HandleRemoveFavorite)
				r.Post("/{id:[0-9]+}/shopping_cart", recipes.HandleAddToCart)
				r.Delete("/{id:[0-9]+}/shopping_cart", recipes.HandleRemoveFromCart)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthorizeRequest(role.RoleAdmin))
			r.Post("/tags", tags.HandleCreateTag)
		})
	})

	// Serve uploaded media from the configured volume.
	prefix := e.Config.Media.URLPrefix
	router.Handle(prefix+"/*", http.StripPrefix(prefix+"/",
		http.FileServer(http.Dir(e.Config.Media.Volume))))
}

// Start godoc
//
//	@title						Foodgram API
//	@version					1.0
//	@description				API Server for the Foodgram recipe-sharing application.
//
//	@securityDefinitions.apikey	AccessToken
//	@in							cookie
//	@name						access
//
//	@host						localhost:8080
//	@BasePath					/api
func Start(env *env.Env) error {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router, env)
	addDocs(router, fmt.Sprintf("0.0.0.0:%d", serverPort))
	http.Handle("/", router)

	env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0:%d", serverPort))
	env.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0:%d/api/swagger/index.html", serverPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", serverPort), nil)
}
