package database

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int32
	CreatedAt   time.Time
}

// IngredientAmountRow is an ingredient joined with its per-recipe amount.
type IngredientAmountRow struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int32
}

// CartIngredientRow is one ingredient amount belonging to a recipe in a
// user's cart. Rows are unaggregated; the shopping package sums them.
type CartIngredientRow struct {
	Name            string
	MeasurementUnit string
	Amount          int32
}

type CreateUserParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
}

type CreateIngredientParams struct {
	Name            string
	MeasurementUnit string
}

type CreateTagParams struct {
	Name  string
	Color string
	Slug  string
}

type CreateRecipeParams struct {
	AuthorID    int64
	Name        string
	Image       string
	Text        string
	CookingTime int32
}

type UpdateRecipeParams struct {
	ID          int64
	Name        string
	Image       string
	Text        string
	CookingTime int32
}

type InsertIngredientAmountParams struct {
	RecipeID     int64
	IngredientID int64
	Amount       int32
}

// ListRecipesParams holds the attribute filters applied before pagination.
// Zero-valued fields are not applied.
type ListRecipesParams struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
}
