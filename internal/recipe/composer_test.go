package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/database/memory"
)

type fixture struct {
	store       *memory.Store
	author      database.User
	admin       database.User
	other       database.User
	ingredients []int64
	tags        []int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	f := fixture{store: store}

	users := []struct {
		email, username string
		role            database.Role
		dst             *database.User
	}{
		{"author@example.com", "author", database.RoleUser, &f.author},
		{"admin@example.com", "admin", database.RoleAdmin, &f.admin},
		{"other@example.com", "other", database.RoleUser, &f.other},
	}
	for _, u := range users {
		id, err := store.CreateUser(ctx, database.CreateUserParams{
			Email:        u.email,
			Username:     u.username,
			FirstName:    "first",
			LastName:     "last",
			PasswordHash: "hash",
			Role:         u.role,
		})
		if err != nil {
			t.Fatalf("creating user %s: %v", u.username, err)
		}
		user, err := store.GetUserByID(ctx, id)
		if err != nil {
			t.Fatalf("fetching user %s: %v", u.username, err)
		}
		*u.dst = user
	}

	for _, ing := range []database.CreateIngredientParams{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	} {
		id, err := store.CreateIngredient(ctx, ing)
		if err != nil {
			t.Fatalf("creating ingredient %s: %v", ing.Name, err)
		}
		f.ingredients = append(f.ingredients, id)
	}

	tagID, err := store.CreateTag(ctx, database.CreateTagParams{
		Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast",
	})
	if err != nil {
		t.Fatalf("creating tag: %v", err)
	}
	f.tags = append(f.tags, tagID)

	return f
}

func (f fixture) input() Input {
	return Input{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "/media/recipes/pancakes.png",
		CookingTime: 20,
		TagIDs:      f.tags,
		Ingredients: []IngredientInput{
			{ID: f.ingredients[0], Amount: 100},
			{ID: f.ingredients[1], Amount: 50},
		},
	}
}

func TestMergeAmounts(t *testing.T) {
	merged := MergeAmounts([]IngredientInput{
		{ID: 1, Amount: 100},
		{ID: 2, Amount: 30},
		{ID: 1, Amount: 250},
	})
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged inputs, got %d", len(merged))
	}
	if merged[0].ID != 1 || merged[0].Amount != 350 {
		t.Errorf("expected first input (1, 350), got (%d, %d)", merged[0].ID, merged[0].Amount)
	}
	if merged[1].ID != 2 || merged[1].Amount != 30 {
		t.Errorf("expected second input (2, 30), got (%d, %d)", merged[1].ID, merged[1].Amount)
	}
}

func TestCreateMergesDuplicateIngredients(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	input := f.input()
	input.Ingredients = []IngredientInput{
		{ID: f.ingredients[0], Amount: 100},
		{ID: f.ingredients[0], Amount: 250},
	}

	created, err := composer.Create(ctx, f.author, input)
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	amounts, err := f.store.ListIngredientAmounts(ctx, created.ID)
	if err != nil {
		t.Fatalf("listing amounts: %v", err)
	}
	if len(amounts) != 1 {
		t.Fatalf("expected 1 amount row, got %d", len(amounts))
	}
	if amounts[0].Amount != 350 {
		t.Errorf("expected merged amount 350, got %d", amounts[0].Amount)
	}
}

func TestCreateRejectsNonPositiveCookingTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	input := f.input()
	input.CookingTime = 0

	_, err := composer.Create(ctx, f.author, input)
	if !errors.Is(err, ErrCookingTimeNotPositive) {
		t.Fatalf("expected ErrCookingTimeNotPositive, got %v", err)
	}

	// Nothing may persist on a validation failure.
	recipes, err := f.store.ListRecipes(ctx, database.ListRecipesParams{})
	if err != nil {
		t.Fatalf("listing recipes: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected no recipes after failed create, got %d", len(recipes))
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	input := f.input()
	input.Ingredients = []IngredientInput{{ID: f.ingredients[0], Amount: 0}}

	if _, err := composer.Create(ctx, f.author, input); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("expected ErrAmountNotPositive, got %v", err)
	}
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	input := f.input()
	input.Ingredients = []IngredientInput{{ID: 9999, Amount: 10}}
	if _, err := composer.Create(ctx, f.author, input); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}

	input = f.input()
	input.TagIDs = []int64{9999}
	if _, err := composer.Create(ctx, f.author, input); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}

	recipes, err := f.store.ListRecipes(ctx, database.ListRecipesParams{})
	if err != nil {
		t.Fatalf("listing recipes: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("expected no recipes after failed creates, got %d", len(recipes))
	}
}

func TestUpdateReplacesIngredientSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	input := f.input()
	input.Ingredients = []IngredientInput{
		{ID: f.ingredients[0], Amount: 100},
		{ID: f.ingredients[1], Amount: 50},
		{ID: f.ingredients[2], Amount: 200},
	}
	created, err := composer.Create(ctx, f.author, input)
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	_, err = composer.Update(ctx, f.author, created.ID, UpdateInput{
		TagIDs: f.tags,
		Ingredients: []IngredientInput{
			{ID: f.ingredients[0], Amount: 150},
			{ID: f.ingredients[2], Amount: 300},
		},
	})
	if err != nil {
		t.Fatalf("updating recipe: %v", err)
	}

	amounts, err := f.store.ListIngredientAmounts(ctx, created.ID)
	if err != nil {
		t.Fatalf("listing amounts: %v", err)
	}
	if len(amounts) != 2 {
		t.Fatalf("expected 2 amount rows after replacement, got %d", len(amounts))
	}
	for _, row := range amounts {
		if row.IngredientID == f.ingredients[1] {
			t.Errorf("ingredient %d should have been removed", f.ingredients[1])
		}
	}
}

func TestUpdatePatchesScalars(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	created, err := composer.Create(ctx, f.author, f.input())
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	name := "Crepes"
	cookingTime := int32(35)
	updated, err := composer.Update(ctx, f.author, created.ID, UpdateInput{
		Name:        &name,
		CookingTime: &cookingTime,
		TagIDs:      f.tags,
		Ingredients: f.input().Ingredients,
	})
	if err != nil {
		t.Fatalf("updating recipe: %v", err)
	}

	if updated.Name != "Crepes" {
		t.Errorf("expected name Crepes, got %q", updated.Name)
	}
	if updated.CookingTime != 35 {
		t.Errorf("expected cooking time 35, got %d", updated.CookingTime)
	}
	if updated.Text != created.Text {
		t.Errorf("unpatched text changed: %q != %q", updated.Text, created.Text)
	}
}

func TestUpdateAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	created, err := composer.Create(ctx, f.author, f.input())
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	update := UpdateInput{TagIDs: f.tags, Ingredients: f.input().Ingredients}

	if _, err := composer.Update(ctx, f.other, created.ID, update); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor for non-author, got %v", err)
	}
	if _, err := composer.Update(ctx, f.admin, created.ID, update); err != nil {
		t.Fatalf("expected admin update to succeed, got %v", err)
	}
}

func TestUpdateUnknownRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	_, err := composer.Update(ctx, f.author, 9999, UpdateInput{
		TagIDs:      f.tags,
		Ingredients: f.input().Ingredients,
	})
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound, got %v", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	created, err := composer.Create(ctx, f.author, f.input())
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}
	if err := f.store.AddFavorite(ctx, f.other.ID, created.ID); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	if err := composer.Delete(ctx, f.author, created.ID); err != nil {
		t.Fatalf("deleting recipe: %v", err)
	}

	if _, err := f.store.GetRecipe(ctx, created.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected recipe to be gone, got %v", err)
	}
	amounts, err := f.store.ListIngredientAmounts(ctx, created.ID)
	if err != nil {
		t.Fatalf("listing amounts: %v", err)
	}
	if len(amounts) != 0 {
		t.Errorf("expected amounts to cascade, got %d rows", len(amounts))
	}
	favorited, err := f.store.FavoriteExists(ctx, f.other.ID, created.ID)
	if err != nil {
		t.Fatalf("checking favorite: %v", err)
	}
	if favorited {
		t.Error("expected favorite to cascade on delete")
	}
}

func TestDeleteAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	composer := NewComposer(f.store)

	created, err := composer.Create(ctx, f.author, f.input())
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}

	if err := composer.Delete(ctx, f.other, created.ID); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if err := composer.Delete(ctx, f.admin, created.ID); err != nil {
		t.Fatalf("expected admin delete to succeed, got %v", err)
	}
}
