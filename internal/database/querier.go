package database

import "context"

// Querier is the set of store operations the application is written
// against. It is implemented by Queries (pgx) and by memory.Store.
type Querier interface {
	// Users
	CreateUser(ctx context.Context, params CreateUserParams) (int64, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetAdminCount(ctx context.Context) (int64, error)

	// Ingredients
	CreateIngredient(ctx context.Context, params CreateIngredientParams) (int64, error)
	GetIngredient(ctx context.Context, id int64) (Ingredient, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error)

	// Tags
	CreateTag(ctx context.Context, params CreateTagParams) (int64, error)
	GetTag(ctx context.Context, id int64) (Tag, error)
	ListTags(ctx context.Context) ([]Tag, error)
	ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error)
	SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error

	// Recipes
	CreateRecipe(ctx context.Context, params CreateRecipeParams) (int64, error)
	UpdateRecipe(ctx context.Context, params UpdateRecipeParams) error
	DeleteRecipe(ctx context.Context, id int64) error
	GetRecipe(ctx context.Context, id int64) (Recipe, error)
	ListRecipes(ctx context.Context, params ListRecipesParams) ([]Recipe, error)
	ListRecipesByAuthor(ctx context.Context, authorID int64) ([]Recipe, error)
	CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error)

	// Ingredient amounts
	InsertIngredientAmount(ctx context.Context, params InsertIngredientAmountParams) error
	DeleteIngredientAmounts(ctx context.Context, recipeID int64) error
	ListIngredientAmounts(ctx context.Context, recipeID int64) ([]IngredientAmountRow, error)
	ListCartIngredients(ctx context.Context, userID int64) ([]CartIngredientRow, error)

	// Relations
	AddFavorite(ctx context.Context, userID, recipeID int64) error
	RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
	FavoriteExists(ctx context.Context, userID, recipeID int64) (bool, error)
	AddCart(ctx context.Context, userID, recipeID int64) error
	RemoveCart(ctx context.Context, userID, recipeID int64) (bool, error)
	CartExists(ctx context.Context, userID, recipeID int64) (bool, error)
	AddFollow(ctx context.Context, userID, authorID int64) error
	RemoveFollow(ctx context.Context, userID, authorID int64) (bool, error)
	FollowExists(ctx context.Context, userID, authorID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64) ([]User, error)
}

// Store is a Querier whose mutations can be scoped to a transaction.
// Every exit path of fn releases the transaction: a nil return commits,
// anything else rolls back.
type Store interface {
	Querier
	WithTx(ctx context.Context, fn func(Querier) error) error
}
