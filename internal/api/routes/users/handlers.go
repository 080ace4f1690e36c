// Package users contains handlers for the user resource.
package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apiError "github.com/Parker-ink/foodgram-project-react/internal/api/error"
	"github.com/Parker-ink/foodgram-project-react/internal/api/requestid"
	"github.com/Parker-ink/foodgram-project-react/internal/api/token"
	"github.com/Parker-ink/foodgram-project-react/internal/argon2id"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/env"
	fgJson "github.com/Parker-ink/foodgram-project-react/internal/json"
	"github.com/Parker-ink/foodgram-project-react/internal/pagination"
	"github.com/Parker-ink/foodgram-project-react/internal/password"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
	"github.com/Parker-ink/foodgram-project-react/internal/view"
)

// HandleCreateUser godoc
//
//	@Summary	Register a user.
//	@Tags		User
//	@Accept		json
//	@Param		request	body		CreateUserRequest	true	"Create User Request"
//	@Success	201		{object}	view.User
//	@Failure	409		{object}	apiError.Error	"Status Conflict"
//	@Failure	422		{object}	apiError.Error	"Unprocessible Entity"
//	@Router		/api/users [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateUserRequest
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

	// Ensure password strength
	env.Logger.DebugContext(ctx, "Validating password")
	if err := password.ValidatePassword(request.Password); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	// Hash password
	env.Logger.DebugContext(ctx, "Hashing password")
	hash, err := argon2id.EncodeHash(request.Password, argon2id.DefaultParams)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create user
	env.Logger.DebugContext(ctx, "Creating user")
	userID, err := env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
		Role:         database.RoleUser,
	})
	if database.IsUniqueViolation(err) {
		env.Logger.ErrorContext(ctx, "User with email or username already exists", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserConflict, "email or username already in use", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Write response
	env.Logger.DebugContext(ctx, "Writing response")
	profile := view.User{
		Email:     request.Email,
		ID:        userID,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	}
	resp, err := json.Marshal(profile)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to marshal response", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write(resp); err != nil {
		env.Logger.ErrorContext(ctx, "Failed to write response", slog.Any("error", err))
	}
}

// HandleListUsers godoc
//
//	@Summary	List user profiles.
//	@Tags		User
//	@Produce	json
//	@Param		page	query		int	false	"Page number"
//	@Param		limit	query		int	false	"Page size"
//	@Success	200		{object}	pagination.Page[view.User]
//	@Router		/api/users [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	viewer := token.ViewerFromCtx(ctx)

	env.Logger.DebugContext(ctx, "Listing users")
	users, err := env.Database.ListUsers(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	page := pagination.Paginate(users, pagination.FromRequest(r), r.URL)

	env.Logger.DebugContext(ctx, "Projecting profiles")
	profiles := make([]view.User, 0, len(page.Results))
	for _, u := range page.Results {
		profile, err := env.Projector.Profile(ctx, u, viewer)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to project profile", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		profiles = append(profiles, profile)
	}

	writeJSON(w, env, ctx, requestID, pagination.Page[view.User]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  profiles,
	})
}

// HandleGetMe godoc
//
//	@Summary	Get the authenticated user's profile.
//	@Tags		User
//	@Produce	json
//	@Success	200	{object}	view.User
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/users/me [GET]
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	profile, err := env.Projector.Profile(ctx, user, &user)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project profile", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, env, ctx, requestID, profile)
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		User
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	view.User
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id} [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)
	viewer := token.ViewerFromCtx(ctx)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Fetching user", slog.Int64("target-id", userID))
	user, err := env.Database.GetUserByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		env.Logger.ErrorContext(ctx, "User does not exist", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to fetch user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	profile, err := env.Projector.Profile(ctx, user, viewer)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project profile", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	writeJSON(w, env, ctx, requestID, profile)
}

// HandleSubscribe godoc
//
//	@Summary	Subscribe to an author.
//	@Tags		Subscriptions
//	@Produce	json
//	@Param		id				path		int	true	"Author ID"
//	@Param		recipes_limit	query		int	false	"Max recipes per author"
//	@Success	201				{object}	view.Subscription
//	@Failure	400				{object}	apiError.Error	"Bad Request"
//	@Failure	404				{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/subscribe [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse author id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Adding follow", slog.Int64("author-id", authorID))
	if err := env.Toggler.Add(ctx, relation.Follow, user.ID, authorID); err != nil {
		encodeRelationError(w, env, ctx, err, requestID, apiError.UserNotFound)
		return
	}

	author, err := env.Database.GetUserByID(ctx, authorID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to fetch author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	subscription, err := env.Projector.Subscription(ctx, author, &user, recipesLimit(r))
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to project subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	writeJSONStatus(w, env, ctx, requestID, http.StatusCreated, subscription)
}

// HandleUnsubscribe godoc
//
//	@Summary	Unsubscribe from an author.
//	@Tags		Subscriptions
//	@Param		id	path	int	true	"Author ID"
//	@Success	204	"Subscription removed"
//	@Failure	400	{object}	apiError.Error	"Bad Request"
//	@Failure	404	{object}	apiError.Error	"Not Found"
//	@Router		/api/users/{id}/subscribe [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	authorID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to parse author id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid user id", requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Removing follow", slog.Int64("author-id", authorID))
	if err := env.Toggler.Remove(ctx, relation.Follow, user.ID, authorID); err != nil {
		encodeRelationError(w, env, ctx, err, requestID, apiError.UserNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List the authors the authenticated user follows.
//	@Tags		Subscriptions
//	@Produce	json
//	@Param		page			query		int	false	"Page number"
//	@Param		limit			query		int	false	"Page size"
//	@Param		recipes_limit	query		int	false	"Max recipes per author"
//	@Success	200				{object}	pagination.Page[view.Subscription]
//	@Failure	401				{object}	apiError.Error	"Unauthorized"
//	@Router		/api/users/subscriptions [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	user, err := token.UserFromCtx(ctx)
	if err != nil {
		env.Logger.ErrorContext(ctx, "failed to extract user from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	env.Logger.DebugContext(ctx, "Listing followed authors")
	authors, err := env.Database.ListFollowing(ctx, user.ID)
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to list followed authors", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	page := pagination.Paginate(authors, pagination.FromRequest(r), r.URL)
	limit := recipesLimit(r)

	env.Logger.DebugContext(ctx, "Projecting subscriptions")
	subscriptions := make([]view.Subscription, 0, len(page.Results))
	for _, author := range page.Results {
		subscription, err := env.Projector.Subscription(ctx, author, &user, limit)
		if err != nil {
			env.Logger.ErrorContext(ctx, "Failed to project subscription", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		subscriptions = append(subscriptions, subscription)
	}

	writeJSON(w, env, ctx, requestID, pagination.Page[view.Subscription]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  subscriptions,
	})
}
