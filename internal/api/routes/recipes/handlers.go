// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	apiError "github.com/Parker-ink/foodgram-project-react/internal/api/error"
	"github.com/Parker-ink/foodgram-project-react/internal/api/requestid"
	"github.com/Parker-ink/foodgram-project-react/internal/api/token"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/image"
	fgJson "github.com/Parker-ink/foodgram-project-react/internal/json"
	"github.com/Parker-ink/foodgram-project-react/internal/pagination"
	"github.com/Parker-ink/foodgram-project-react/internal/recipe"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
	"github.com/Parker-ink/foodgram-project-react/internal/shopping"
	"github.com/Parker-ink/foodgram-project-react/internal/view"
)

const shoppingListFilename = "shopping_list.txt"

// HandleListRecipes godoc
//
//	@Summary	List recipes with attribute filters.
//	@Tags		Recipes
//	@Produce	json
//	@Param		page					query		int		false	"Page number"
//	@Param		limit					query		int		false	"Page size"
//	@Param		author					query		int		false	"Author ID"
//	@Param		tags					query		string	false	"Tag slug, repeatable"
//	@Param		is_favorited			query		int		false	"1 restricts to the viewer's favorites"
//	@Param		is_in_shopping_cart		query		int		false	"1 restricts to the viewer's cart"
//	@Success	200						{object}	pagination.Page[view.Recipe]
//	@Router		/api/recipes [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	viewer := token.ViewerFromCtx(ctx)

	params := database.ListRecipesParams{
		TagSlugs: r.URL.Query()["tags"],
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("author"), 10, 64); err == nil {
		params.AuthorID = v
	}
	// Viewer-scoped filters are no-ops for anonymous readers.
	if viewer != nil {
		if r.URL.Query().Get("is_favorited") == "1" {
			params.FavoritedBy = viewer.ID
		}
		if r.URL.Query().Get("is_in_shopping_cart") == "1" {
			params.InCartOf = viewer.ID
		}
	}

	env.Logger.DebugContext(ctx, "Listing recipes")
	recipes, err := env.Database.ListRecipes(ctx, params)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	page := pagination.Paginate(recipes, pagination.FromRequest(r), r.URL)

	env.Logger.DebugContext(ctx, "Projecting recipes")
	views, err := env.Projector.Recipes(ctx, page.Results, viewer)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSON(w, env, ctx, requestID, pagination.Page[view.Recipe]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  views,
	})
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Param		request	body		CreateRecipeRequest	true	"Create Recipe Request"
//	@Success	201		{object}	view.Recipe
//	@Failure	400		{object}	apiError.Error	"Bad Request"
//	@Failure	401		{object}	apiError.Error	"Unauthorized"
//	@Router		/api/recipes [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Decode JSON
	var request CreateRecipeRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.DecodeJSON(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Store image
	env.Logger.DebugContext(ctx, "Decoding image")
	urlPath, err := storeImage(env, request.Image)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to store image", slog.Any("error", err))
		encodeImageError(w, err, requestID)
		return
	}

	// Assemble recipe
	env.Logger.DebugContext(ctx, "Creating recipe")
	created, err := env.Composer.Create(ctx, user, recipe.Input{
		Name:        request.Name,
		Text:        request.Text,
		Image:       urlPath,
		CookingTime: request.CookingTime,
		TagIDs:      request.Tags,
		Ingredients: toIngredientInputs(request.Ingredients),
	})
	if err != nil {
		if ferr := env.FileStore.DeleteURLPath(urlPath); ferr != nil {
			env.Logger.WarnContext(ctx, "Failed to remove orphaned image", slog.Any("error", ferr))
		}
		encodeComposerError(w, env, ctx, err, requestID)
		return
	}

	detail, err := env.Projector.Recipe(ctx, created, &user)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSONStatus(w, env, ctx, requestID, http.StatusCreated, detail)
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	200	{object}	view.Recipe
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	viewer := token.ViewerFromCtx(ctx)

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Fetching recipe", slog.Int64("recipe-id", recipeID))
	stored, err := env.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, database.ErrNotFound) {
		env.Logger.ErrorContext(ctx, "Recipe does not exist", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	detail, err := env.Projector.Recipe(ctx, stored, viewer)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, env, ctx, requestID, detail)
}

// HandleUpdateRecipe godoc
//
//	@Summary	Update a recipe. Only the author or an admin may update.
//	@Tags		Recipes
//	@Accept		json
//	@Param		id		path		int					true	"Recipe ID"
//	@Param		request	body		UpdateRecipeRequest	true	"Update Recipe Request"
//	@Success	200		{object}	view.Recipe
//	@Failure	403		{object}	apiError.Error	"Forbidden"
//	@Failure	404		{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	// Decode JSON
	var request UpdateRecipeRequest
	env.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.DecodeJSON(&request, decoder); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	input := recipe.UpdateInput{
		Name:        request.Name,
		Text:        request.Text,
		CookingTime: request.CookingTime,
		TagIDs:      request.Tags,
		Ingredients: toIngredientInputs(request.Ingredients),
	}

	// Replace image when a new one is sent
	var oldImage string
	if request.Image != nil {
		if current, err := env.Database.GetRecipe(ctx, recipeID); err == nil {
			oldImage = current.Image
		}

		env.Logger.DebugContext(ctx, "Decoding replacement image")
		urlPath, err := storeImage(env, *request.Image)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to store image", slog.Any("error", err))
			encodeImageError(w, err, requestID)
			return
		}
		input.Image = &urlPath
	}

	env.Logger.DebugContext(ctx, "Updating recipe", slog.Int64("recipe-id", recipeID))
	updated, err := env.Composer.Update(ctx, user, recipeID, input)
	if err != nil {
		if input.Image != nil {
			if ferr := env.FileStore.DeleteURLPath(*input.Image); ferr != nil {
				env.Logger.WarnContext(ctx, "Failed to remove orphaned image", slog.Any("error", ferr))
			}
		}
		encodeComposerError(w, env, ctx, err, requestID)
		return
	}
	if oldImage != "" && input.Image != nil && oldImage != *input.Image {
		if err := env.FileStore.DeleteURLPath(oldImage); err != nil {
			env.Logger.WarnContext(ctx, "Failed to remove replaced image", slog.Any("error", err))
		}
	}

	detail, err := env.Projector.Recipe(ctx, updated, &user)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, env, ctx, requestID, detail)
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe. Only the author or an admin may delete.
//	@Tags		Recipes
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204	"Recipe deleted"
//	@Failure	403	{object}	apiError.Error	"Forbidden"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	var imagePath string
	if current, err := env.Database.GetRecipe(ctx, recipeID); err == nil {
		imagePath = current.Image
	}

	env.Logger.DebugContext(ctx, "Deleting recipe", slog.Int64("recipe-id", recipeID))
	if err := env.Composer.Delete(ctx, user, recipeID); err != nil {
		encodeComposerError(w, env, ctx, err, requestID)
		return
	}

	if imagePath != "" {
		if err := env.FileStore.DeleteURLPath(imagePath); err != nil {
			env.Logger.WarnContext(ctx, "Failed to remove recipe image", slog.Any("error", err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to the user's favorites.
//	@Tags		Favorites
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	view.RecipeSummary
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/favorite [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	toggleOn(w, r, relation.Favorite)
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from the user's favorites.
//	@Tags		Favorites
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204	"Favorite removed"
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/recipes/{id}/favorite [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	toggleOff(w, r, relation.Favorite)
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the user's shopping cart.
//	@Tags		ShoppingCart
//	@Produce	json
//	@Param		id	path		int	true	"Recipe ID"
//	@Success	201	{object}	view.RecipeSummary
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/recipes/{id}/shopping_cart [POST]
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	toggleOn(w, r, relation.Cart)
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the user's shopping cart.
//	@Tags		ShoppingCart
//	@Param		id	path	int	true	"Recipe ID"
//	@Success	204	"Cart entry removed"
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Router		/api/recipes/{id}/shopping_cart [DELETE]
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	toggleOff(w, r, relation.Cart)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary	Download the aggregated shopping list as plain text.
//	@Tags		ShoppingCart
//	@Produce	plain
//	@Success	200	{string}	string	"Shopping list"
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/recipes/download_shopping_cart [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Aggregating shopping list")
	lines, err := env.Aggregator.Aggregate(ctx, user.ID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to aggregate shopping list", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Writing response")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", shoppingListFilename))
	if _, err := w.Write([]byte(shopping.Render(lines))); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

func toggleOn(w http.ResponseWriter, r *http.Request, kind relation.Kind) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Adding relation",
		slog.String("kind", kind.String()),
		slog.Int64("recipe-id", recipeID))
	if err := env.Toggler.Add(ctx, kind, user.ID, recipeID); err != nil {
		encodeRelationError(w, env, ctx, err, requestID)
		return
	}

	stored, err := env.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to fetch recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSONStatus(w, env, ctx, requestID, http.StatusCreated, view.Summary(stored))
}

func toggleOff(w http.ResponseWriter, r *http.Request, kind relation.Kind) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid recipe id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Removing relation",
		slog.String("kind", kind.String()),
		slog.Int64("recipe-id", recipeID))
	if err := env.Toggler.Remove(ctx, kind, user.ID, recipeID); err != nil {
		encodeRelationError(w, env, ctx, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toIngredientInputs(refs []IngredientRef) []recipe.IngredientInput {
	inputs := make([]recipe.IngredientInput, 0, len(refs))
	for _, ref := range refs {
		inputs = append(inputs, recipe.IngredientInput{ID: ref.ID, Amount: ref.Amount})
	}
	return inputs
}

// storeImage decodes a base64 data URI and writes it to the media volume,
// returning the URL path the image is served under.
func storeImage(env *env.Env, dataURI string) (string, error) {
	img, err := image.DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	urlPath, _, err := env.FileStore.WriteRecipeImage(ulid.Make().String(), img.Suffix, img.Data)
	if err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return urlPath, nil
}

func encodeImageError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, image.ErrMalformedDataURI):
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
	case errors.Is(err, image.ErrUnsupportedMimeType):
		_ = apiError.EncodeError(w, apiError.UnsupportedImage, err.Error(), requestID)
	default:
		_ = apiError.EncodeInternalError(w, requestID)
	}
}
