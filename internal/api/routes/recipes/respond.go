package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apiError "github.com/Parker-ink/foodgram-project-react/internal/api/error"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	"github.com/Parker-ink/foodgram-project-react/internal/recipe"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
)

func writeJSON(w http.ResponseWriter, env *env.Env, ctx context.Context, requestID string, v any) {
	writeJSONStatus(w, env, ctx, requestID, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, env *env.Env, ctx context.Context, requestID string, status int, v any) {
	env.Logger.DebugContext(ctx, "Writing response")
	resp, err := json.Marshal(v)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// encodeComposerError maps composer failures onto API error codes.
// Reference failures inside a batch are client errors, not 404s: the
// recipe body, not the URL, named the missing id.
func encodeComposerError(w http.ResponseWriter, env *env.Env, ctx context.Context, err error, requestID string) {
	env.Logger.ErrorContext(ctx, "Failed to compose recipe", slog.Any("error", err))
	switch {
	case errors.Is(err, recipe.ErrCookingTimeNotPositive),
		errors.Is(err, recipe.ErrAmountNotPositive),
		errors.Is(err, recipe.ErrIngredientNotFound),
		errors.Is(err, recipe.ErrTagNotFound):
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
	case errors.Is(err, recipe.ErrRecipeNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, recipe.ErrNotAuthor):
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, err.Error(), requestID)
	default:
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

// encodeRelationError maps toggler failures onto API error codes.
func encodeRelationError(w http.ResponseWriter, env *env.Env, ctx context.Context, err error, requestID string) {
	env.Logger.ErrorContext(ctx, "Failed to toggle relation", slog.Any("error", err))
	switch {
	case errors.Is(err, relation.ErrAlreadyExists):
		_ = apiError.EncodeError(w, apiError.RelationConflict, relation.ErrAlreadyExists.Error(), requestID)
	case errors.Is(err, relation.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RelationNotFound, relation.ErrNotFound.Error(), requestID)
	case errors.Is(err, relation.ErrTargetNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, relation.ErrConflict):
		_ = apiError.EncodeError(w, apiError.RelationConflict, relation.ErrConflict.Error(), requestID)
	default:
		_ = apiError.EncodeInternalError(w, requestID)
	}
}
