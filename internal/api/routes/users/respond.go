package users

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apiError "github.com/Parker-ink/foodgram-project-react/internal/api/error"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
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

// encodeRelationError maps toggler failures onto API error codes.
// notFoundCode names the code used when the relation target is absent.
func encodeRelationError(
	w http.ResponseWriter,
	env *env.Env,
	ctx context.Context,
	err error,
	requestID string,
	notFoundCode apiError.ErrorCode,
) {
	env.Logger.ErrorContext(ctx, "Failed to toggle relation", slog.Any("error", err))
	switch {
	case errors.Is(err, relation.ErrSelfFollow):
		_ = apiError.EncodeError(w, apiError.BadRequest, relation.ErrSelfFollow.Error(), requestID)
	case errors.Is(err, relation.ErrAlreadyExists):
		_ = apiError.EncodeError(w, apiError.RelationConflict, relation.ErrAlreadyExists.Error(), requestID)
	case errors.Is(err, relation.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RelationNotFound, relation.ErrNotFound.Error(), requestID)
	case errors.Is(err, relation.ErrTargetNotFound):
		_ = apiError.EncodeError(w, notFoundCode, relation.ErrTargetNotFound.Error(), requestID)
	case errors.Is(err, relation.ErrConflict):
		_ = apiError.EncodeError(w, apiError.RelationConflict, relation.ErrConflict.Error(), requestID)
	default:
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

// recipesLimit reads the recipes_limit query parameter. Zero means
// unbounded.
func recipesLimit(r *http.Request) int {
	v, err := strconv.Atoi(r.URL.Query().Get("recipes_limit"))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
