// Package recipe assembles and updates recipes from nested
// ingredient-amount and tag inputs.
package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

var (
	ErrCookingTimeNotPositive = errors.New("cooking time must be positive")
	ErrAmountNotPositive      = errors.New("ingredient amount must be positive")
	ErrNotAuthor              = errors.New("only the author or an admin may modify the recipe")
	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrIngredientNotFound     = errors.New("ingredient not found")
	ErrTagNotFound            = errors.New("tag not found")
)

// IngredientInput is one (ingredient id, amount) pair of a create or
// update batch.
type IngredientInput struct {
	ID     int64
	Amount int32
}

// Input carries everything needed to assemble a recipe.
type Input struct {
	Name        string
	Text        string
	Image       string
	CookingTime int32
	TagIDs      []int64
	Ingredients []IngredientInput
}

// UpdateInput is Input with optional scalar fields. The ingredient and tag
// lists are always full replacements.
type UpdateInput struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int32
	TagIDs      []int64
	Ingredients []IngredientInput
}

type Composer struct {
	store database.Store
}

func NewComposer(store database.Store) *Composer {
	return &Composer{store: store}
}

// MergeAmounts collapses duplicate ingredient ids within one input batch by
// summing their amounts. The first occurrence keeps its position.
func MergeAmounts(inputs []IngredientInput) []IngredientInput {
	merged := make([]IngredientInput, 0, len(inputs))
	index := make(map[int64]int, len(inputs))
	for _, in := range inputs {
		if i, ok := index[in.ID]; ok {
			merged[i].Amount += in.Amount
			continue
		}
		index[in.ID] = len(merged)
		merged = append(merged, in)
	}
	return merged
}

// Create validates the input, then inserts the recipe, its merged
// ingredient amounts, and its tag set in one transaction. Validation
// failures occur before any row is written.
func (c *Composer) Create(ctx context.Context, author database.User, input Input) (database.Recipe, error) {
	if input.CookingTime <= 0 {
		return database.Recipe{}, ErrCookingTimeNotPositive
	}
	if err := validateAmounts(input.Ingredients); err != nil {
		return database.Recipe{}, err
	}

	var created database.Recipe
	err := c.store.WithTx(ctx, func(q database.Querier) error {
		if err := checkReferences(ctx, q, input.Ingredients, input.TagIDs); err != nil {
			return err
		}

		id, err := q.CreateRecipe(ctx, database.CreateRecipeParams{
			AuthorID:    author.ID,
			Name:        input.Name,
			Image:       input.Image,
			Text:        input.Text,
			CookingTime: input.CookingTime,
		})
		if err != nil {
			return fmt.Errorf("creating recipe: %w", err)
		}

		if err := insertAmounts(ctx, q, id, input.Ingredients); err != nil {
			return err
		}
		if err := q.SetRecipeTags(ctx, id, input.TagIDs); err != nil {
			return fmt.Errorf("setting tags: %w", err)
		}

		created, err = q.GetRecipe(ctx, id)
		return err
	})
	if err != nil {
		return database.Recipe{}, err
	}
	return created, nil
}

// Update replaces the recipe's ingredient and tag sets and patches any
// provided scalar fields. The delete-then-rebuild of ingredient amounts
// runs inside one transaction, so a failure mid-rebuild leaves the
// previous state intact.
func (c *Composer) Update(ctx context.Context, caller database.User, recipeID int64, input UpdateInput) (database.Recipe, error) {
	if input.CookingTime != nil && *input.CookingTime <= 0 {
		return database.Recipe{}, ErrCookingTimeNotPositive
	}
	if err := validateAmounts(input.Ingredients); err != nil {
		return database.Recipe{}, err
	}

	var updated database.Recipe
	err := c.store.WithTx(ctx, func(q database.Querier) error {
		current, err := q.GetRecipe(ctx, recipeID)
		if errors.Is(err, database.ErrNotFound) {
			return ErrRecipeNotFound
		} else if err != nil {
			return fmt.Errorf("fetching recipe: %w", err)
		}
		if !mayModify(caller, current) {
			return ErrNotAuthor
		}
		if err := checkReferences(ctx, q, input.Ingredients, input.TagIDs); err != nil {
			return err
		}

		params := database.UpdateRecipeParams{
			ID:          recipeID,
			Name:        current.Name,
			Image:       current.Image,
			Text:        current.Text,
			CookingTime: current.CookingTime,
		}
		if input.Name != nil {
			params.Name = *input.Name
		}
		if input.Image != nil {
			params.Image = *input.Image
		}
		if input.Text != nil {
			params.Text = *input.Text
		}
		if input.CookingTime != nil {
			params.CookingTime = *input.CookingTime
		}
		if err := q.UpdateRecipe(ctx, params); err != nil {
			return fmt.Errorf("updating recipe: %w", err)
		}

		if err := q.DeleteIngredientAmounts(ctx, recipeID); err != nil {
			return fmt.Errorf("clearing ingredient amounts: %w", err)
		}
		if err := insertAmounts(ctx, q, recipeID, input.Ingredients); err != nil {
			return err
		}
		if err := q.SetRecipeTags(ctx, recipeID, input.TagIDs); err != nil {
			return fmt.Errorf("setting tags: %w", err)
		}

		updated, err = q.GetRecipe(ctx, recipeID)
		return err
	})
	if err != nil {
		return database.Recipe{}, err
	}
	return updated, nil
}

// Delete removes the recipe; its ingredient amounts, favorites, and cart
// entries cascade.
func (c *Composer) Delete(ctx context.Context, caller database.User, recipeID int64) error {
	return c.store.WithTx(ctx, func(q database.Querier) error {
		current, err := q.GetRecipe(ctx, recipeID)
		if errors.Is(err, database.ErrNotFound) {
			return ErrRecipeNotFound
		} else if err != nil {
			return fmt.Errorf("fetching recipe: %w", err)
		}
		if !mayModify(caller, current) {
			return ErrNotAuthor
		}
		return q.DeleteRecipe(ctx, recipeID)
	})
}

func mayModify(caller database.User, r database.Recipe) bool {
	return caller.ID == r.AuthorID || caller.Role == database.RoleAdmin
}

func validateAmounts(inputs []IngredientInput) error {
	for _, in := range inputs {
		if in.Amount <= 0 {
			return fmt.Errorf("ingredient %d: %w", in.ID, ErrAmountNotPositive)
		}
	}
	return nil
}

func checkReferences(ctx context.Context, q database.Querier, ingredients []IngredientInput, tagIDs []int64) error {
	for _, in := range ingredients {
		if _, err := q.GetIngredient(ctx, in.ID); errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("ingredient %d: %w", in.ID, ErrIngredientNotFound)
		} else if err != nil {
			return fmt.Errorf("fetching ingredient %d: %w", in.ID, err)
		}
	}
	for _, tagID := range tagIDs {
		if _, err := q.GetTag(ctx, tagID); errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("tag %d: %w", tagID, ErrTagNotFound)
		} else if err != nil {
			return fmt.Errorf("fetching tag %d: %w", tagID, err)
		}
	}
	return nil
}

func insertAmounts(ctx context.Context, q database.Querier, recipeID int64, inputs []IngredientInput) error {
	for _, in := range MergeAmounts(inputs) {
		err := q.InsertIngredientAmount(ctx, database.InsertIngredientAmountParams{
			RecipeID:     recipeID,
			IngredientID: in.ID,
			Amount:       in.Amount,
		})
		if err != nil {
			return fmt.Errorf("inserting amount for ingredient %d: %w", in.ID, err)
		}
	}
	return nil
}
