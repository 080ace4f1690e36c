package memory

import (
	"context"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

// Store methods take the lock and delegate to the unlocked querier.

func (s *Store) CreateUser(ctx context.Context, params database.CreateUserParams) (id int64, err error) {
	err = s.run(func(q *querier) error { id, err = q.CreateUser(ctx, params); return err })
	return id, err
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (u database.User, err error) {
	err = s.run(func(q *querier) error { u, err = q.GetUserByID(ctx, id); return err })
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (u database.User, err error) {
	err = s.run(func(q *querier) error { u, err = q.GetUserByEmail(ctx, email); return err })
	return u, err
}

func (s *Store) ListUsers(ctx context.Context) (users []database.User, err error) {
	err = s.run(func(q *querier) error { users, err = q.ListUsers(ctx); return err })
	return users, err
}

func (s *Store) GetAdminCount(ctx context.Context) (count int64, err error) {
	err = s.run(func(q *querier) error { count, err = q.GetAdminCount(ctx); return err })
	return count, err
}

func (s *Store) CreateIngredient(ctx context.Context, params database.CreateIngredientParams) (id int64, err error) {
	err = s.run(func(q *querier) error { id, err = q.CreateIngredient(ctx, params); return err })
	return id, err
}

func (s *Store) GetIngredient(ctx context.Context, id int64) (ing database.Ingredient, err error) {
	err = s.run(func(q *querier) error { ing, err = q.GetIngredient(ctx, id); return err })
	return ing, err
}

func (s *Store) ListIngredients(ctx context.Context, namePrefix string) (ingredients []database.Ingredient, err error) {
	err = s.run(func(q *querier) error { ingredients, err = q.ListIngredients(ctx, namePrefix); return err })
	return ingredients, err
}

func (s *Store) CreateTag(ctx context.Context, params database.CreateTagParams) (id int64, err error) {
	err = s.run(func(q *querier) error { id, err = q.CreateTag(ctx, params); return err })
	return id, err
}

func (s *Store) GetTag(ctx context.Context, id int64) (t database.Tag, err error) {
	err = s.run(func(q *querier) error { t, err = q.GetTag(ctx, id); return err })
	return t, err
}

func (s *Store) ListTags(ctx context.Context) (tags []database.Tag, err error) {
	err = s.run(func(q *querier) error { tags, err = q.ListTags(ctx); return err })
	return tags, err
}

func (s *Store) ListRecipeTags(ctx context.Context, recipeID int64) (tags []database.Tag, err error) {
	err = s.run(func(q *querier) error { tags, err = q.ListRecipeTags(ctx, recipeID); return err })
	return tags, err
}

func (s *Store) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	return s.run(func(q *querier) error { return q.SetRecipeTags(ctx, recipeID, tagIDs) })
}

func (s *Store) CreateRecipe(ctx context.Context, params database.CreateRecipeParams) (id int64, err error) {
	err = s.run(func(q *querier) error { id, err = q.CreateRecipe(ctx, params); return err })
	return id, err
}

func (s *Store) UpdateRecipe(ctx context.Context, params database.UpdateRecipeParams) error {
	return s.run(func(q *querier) error { return q.UpdateRecipe(ctx, params) })
}

func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	return s.run(func(q *querier) error { return q.DeleteRecipe(ctx, id) })
}

func (s *Store) GetRecipe(ctx context.Context, id int64) (r database.Recipe, err error) {
	err = s.run(func(q *querier) error { r, err = q.GetRecipe(ctx, id); return err })
	return r, err
}

func (s *Store) ListRecipes(ctx context.Context, params database.ListRecipesParams) (recipes []database.Recipe, err error) {
	err = s.run(func(q *querier) error { recipes, err = q.ListRecipes(ctx, params); return err })
	return recipes, err
}

func (s *Store) ListRecipesByAuthor(ctx context.Context, authorID int64) (recipes []database.Recipe, err error) {
	err = s.run(func(q *querier) error { recipes, err = q.ListRecipesByAuthor(ctx, authorID); return err })
	return recipes, err
}

func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID int64) (count int64, err error) {
	err = s.run(func(q *querier) error { count, err = q.CountRecipesByAuthor(ctx, authorID); return err })
	return count, err
}

func (s *Store) InsertIngredientAmount(ctx context.Context, params database.InsertIngredientAmountParams) error {
	return s.run(func(q *querier) error { return q.InsertIngredientAmount(ctx, params) })
}

func (s *Store) DeleteIngredientAmounts(ctx context.Context, recipeID int64) error {
	return s.run(func(q *querier) error { return q.DeleteIngredientAmounts(ctx, recipeID) })
}

func (s *Store) ListIngredientAmounts(ctx context.Context, recipeID int64) (rows []database.IngredientAmountRow, err error) {
	err = s.run(func(q *querier) error { rows, err = q.ListIngredientAmounts(ctx, recipeID); return err })
	return rows, err
}

func (s *Store) ListCartIngredients(ctx context.Context, userID int64) (rows []database.CartIngredientRow, err error) {
	err = s.run(func(q *querier) error { rows, err = q.ListCartIngredients(ctx, userID); return err })
	return rows, err
}

func (s *Store) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	return s.run(func(q *querier) error { return q.AddFavorite(ctx, userID, recipeID) })
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID int64) (removed bool, err error) {
	err = s.run(func(q *querier) error { removed, err = q.RemoveFavorite(ctx, userID, recipeID); return err })
	return removed, err
}

func (s *Store) FavoriteExists(ctx context.Context, userID, recipeID int64) (exists bool, err error) {
	err = s.run(func(q *querier) error { exists, err = q.FavoriteExists(ctx, userID, recipeID); return err })
	return exists, err
}

func (s *Store) AddCart(ctx context.Context, userID, recipeID int64) error {
	return s.run(func(q *querier) error { return q.AddCart(ctx, userID, recipeID) })
}

func (s *Store) RemoveCart(ctx context.Context, userID, recipeID int64) (removed bool, err error) {
	err = s.run(func(q *querier) error { removed, err = q.RemoveCart(ctx, userID, recipeID); return err })
	return removed, err
}

func (s *Store) CartExists(ctx context.Context, userID, recipeID int64) (exists bool, err error) {
	err = s.run(func(q *querier) error { exists, err = q.CartExists(ctx, userID, recipeID); return err })
	return exists, err
}

func (s *Store) AddFollow(ctx context.Context, userID, authorID int64) error {
	return s.run(func(q *querier) error { return q.AddFollow(ctx, userID, authorID) })
}

func (s *Store) RemoveFollow(ctx context.Context, userID, authorID int64) (removed bool, err error) {
	err = s.run(func(q *querier) error { removed, err = q.RemoveFollow(ctx, userID, authorID); return err })
	return removed, err
}

func (s *Store) FollowExists(ctx context.Context, userID, authorID int64) (exists bool, err error) {
	err = s.run(func(q *querier) error { exists, err = q.FollowExists(ctx, userID, authorID); return err })
	return exists, err
}

func (s *Store) ListFollowing(ctx context.Context, userID int64) (authors []database.User, err error) {
	err = s.run(func(q *querier) error { authors, err = q.ListFollowing(ctx, userID); return err })
	return authors, err
}
