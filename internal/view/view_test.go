package view

import (
	"context"
	"testing"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/database/memory"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
)

type fixture struct {
	store     *memory.Store
	projector *Projector
	toggler   *relation.Toggler
	viewer    database.User
	author    database.User
	recipe    database.Recipe
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	toggler := relation.NewToggler(store)

	f := fixture{
		store:     store,
		toggler:   toggler,
		projector: NewProjector(store, toggler),
	}

	viewerID, err := store.CreateUser(ctx, database.CreateUserParams{
		Email: "viewer@example.com", Username: "viewer",
		FirstName: "View", LastName: "Er",
		PasswordHash: "hash", Role: database.RoleUser,
	})
	if err != nil {
		t.Fatalf("creating viewer: %v", err)
	}
	authorID, err := store.CreateUser(ctx, database.CreateUserParams{
		Email: "author@example.com", Username: "author",
		FirstName: "Auth", LastName: "Or",
		PasswordHash: "hash", Role: database.RoleUser,
	})
	if err != nil {
		t.Fatalf("creating author: %v", err)
	}
	f.viewer, _ = store.GetUserByID(ctx, viewerID)
	f.author, _ = store.GetUserByID(ctx, authorID)

	flour, err := store.CreateIngredient(ctx, database.CreateIngredientParams{Name: "flour", MeasurementUnit: "g"})
	if err != nil {
		t.Fatalf("creating ingredient: %v", err)
	}
	tagID, err := store.CreateTag(ctx, database.CreateTagParams{Name: "Dinner", Color: "#49B64E", Slug: "dinner"})
	if err != nil {
		t.Fatalf("creating tag: %v", err)
	}

	recipeID, err := store.CreateRecipe(ctx, database.CreateRecipeParams{
		AuthorID: authorID, Name: "Bread", Image: "/media/recipes/bread.png",
		Text: "Bake.", CookingTime: 90,
	})
	if err != nil {
		t.Fatalf("creating recipe: %v", err)
	}
	err = store.InsertIngredientAmount(ctx, database.InsertIngredientAmountParams{
		RecipeID: recipeID, IngredientID: flour, Amount: 500,
	})
	if err != nil {
		t.Fatalf("inserting amount: %v", err)
	}
	if err := store.SetRecipeTags(ctx, recipeID, []int64{tagID}); err != nil {
		t.Fatalf("setting tags: %v", err)
	}
	f.recipe, _ = store.GetRecipe(ctx, recipeID)

	return f
}

func TestRecipeProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.toggler.Add(ctx, relation.Favorite, f.viewer.ID, f.recipe.ID); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	detail, err := f.projector.Recipe(ctx, f.recipe, &f.viewer)
	if err != nil {
		t.Fatalf("projecting recipe: %v", err)
	}

	if !detail.IsFavorited {
		t.Error("expected is_favorited true for favoriting viewer")
	}
	if detail.IsInShoppingCart {
		t.Error("expected is_in_shopping_cart false")
	}
	if detail.Author.Username != "author" {
		t.Errorf("expected author username, got %q", detail.Author.Username)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Amount != 500 {
		t.Errorf("unexpected ingredients: %+v", detail.Ingredients)
	}
	if len(detail.Tags) != 1 || detail.Tags[0].Slug != "dinner" {
		t.Errorf("unexpected tags: %+v", detail.Tags)
	}
}

func TestRecipeProjectionAnonymous(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.toggler.Add(ctx, relation.Favorite, f.viewer.ID, f.recipe.ID); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	detail, err := f.projector.Recipe(ctx, f.recipe, nil)
	if err != nil {
		t.Fatalf("projecting recipe: %v", err)
	}
	if detail.IsFavorited || detail.IsInShoppingCart || detail.Author.IsSubscribed {
		t.Error("expected all viewer flags false for anonymous viewer")
	}
}

func TestProfileSubscriptionFlag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.toggler.Add(ctx, relation.Follow, f.viewer.ID, f.author.ID); err != nil {
		t.Fatalf("adding follow: %v", err)
	}

	profile, err := f.projector.Profile(ctx, f.author, &f.viewer)
	if err != nil {
		t.Fatalf("projecting profile: %v", err)
	}
	if !profile.IsSubscribed {
		t.Error("expected is_subscribed true")
	}
}

func TestSubscriptionRecipesLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// Two more recipes for the author, three total.
	for i := 0; i < 2; i++ {
		_, err := f.store.CreateRecipe(ctx, database.CreateRecipeParams{
			AuthorID: f.author.ID, Name: "Extra", Text: "Cook.", CookingTime: 10,
		})
		if err != nil {
			t.Fatalf("creating recipe: %v", err)
		}
	}

	subscription, err := f.projector.Subscription(ctx, f.author, &f.viewer, 2)
	if err != nil {
		t.Fatalf("projecting subscription: %v", err)
	}
	if len(subscription.Recipes) != 2 {
		t.Errorf("expected 2 recipe summaries, got %d", len(subscription.Recipes))
	}
	if subscription.RecipesCount != 3 {
		t.Errorf("expected recipes_count 3, got %d", subscription.RecipesCount)
	}

	unbounded, err := f.projector.Subscription(ctx, f.author, &f.viewer, 0)
	if err != nil {
		t.Fatalf("projecting unbounded subscription: %v", err)
	}
	if len(unbounded.Recipes) != 3 {
		t.Errorf("expected 3 recipe summaries unbounded, got %d", len(unbounded.Recipes))
	}
}
