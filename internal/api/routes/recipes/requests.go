package recipes

// IngredientRef is one (ingredient id, amount) pair of a create or update
// request. Duplicate ids are merged by the composer.
type IngredientRef struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int32 `json:"amount" validate:"required,min=1"`
}

type CreateRecipeRequest struct {
	Ingredients []IngredientRef `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64         `json:"tags" validate:"required"`
	Image       string          `json:"image" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Text        string          `json:"text" validate:"required"`
	CookingTime int32           `json:"cooking_time" validate:"required,min=1"`
}

// UpdateRecipeRequest patches scalar fields when present. The ingredient
// and tag lists fully replace the stored sets.
type UpdateRecipeRequest struct {
	Ingredients []IngredientRef `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []int64         `json:"tags" validate:"required"`
	Image       *string         `json:"image"`
	Name        *string         `json:"name" validate:"omitempty,max=200"`
	Text        *string         `json:"text"`
	CookingTime *int32          `json:"cooking_time" validate:"omitempty,min=1"`
}
