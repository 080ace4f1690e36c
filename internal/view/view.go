// Package view renders stored entities into client response shapes with
// the per-viewer flags computed through the relation toggler.
package view

import (
	"context"
	"fmt"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/relation"
)

type User struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int32  `json:"amount"`
}

// Recipe is the canonical detail shape. Create and update responses are
// re-projected through it so they match subsequent reads exactly.
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int32              `json:"cooking_time"`
}

// RecipeSummary is the lightweight shape used in relation responses and
// subscription listings.
type RecipeSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int32  `json:"cooking_time"`
}

type Subscription struct {
	Email        string          `json:"email"`
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

type Projector struct {
	store   database.Querier
	toggler *relation.Toggler
}

func NewProjector(store database.Querier, toggler *relation.Toggler) *Projector {
	return &Projector{store: store, toggler: toggler}
}

func ProjectTag(t database.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func Summary(r database.Recipe) RecipeSummary {
	return RecipeSummary{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// Profile renders a user with the viewer's is_subscribed flag. Anonymous
// viewers resolve to false without a store query.
func (p *Projector) Profile(ctx context.Context, u database.User, viewer *database.User) (User, error) {
	subscribed, err := p.toggler.Exists(ctx, relation.Follow, viewer, u.ID)
	if err != nil {
		return User{}, fmt.Errorf("checking subscription: %w", err)
	}
	return User{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}, nil
}

// Recipe renders the full detail shape for one recipe.
func (p *Projector) Recipe(ctx context.Context, r database.Recipe, viewer *database.User) (Recipe, error) {
	author, err := p.store.GetUserByID(ctx, r.AuthorID)
	if err != nil {
		return Recipe{}, fmt.Errorf("fetching author: %w", err)
	}
	authorView, err := p.Profile(ctx, author, viewer)
	if err != nil {
		return Recipe{}, err
	}

	tagRows, err := p.store.ListRecipeTags(ctx, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("listing tags: %w", err)
	}
	tags := make([]Tag, 0, len(tagRows))
	for _, t := range tagRows {
		tags = append(tags, ProjectTag(t))
	}

	amountRows, err := p.store.ListIngredientAmounts(ctx, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("listing ingredient amounts: %w", err)
	}
	ingredients := make([]RecipeIngredient, 0, len(amountRows))
	for _, row := range amountRows {
		ingredients = append(ingredients, RecipeIngredient{
			ID:              row.IngredientID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	favorited, err := p.toggler.Exists(ctx, relation.Favorite, viewer, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("checking favorite: %w", err)
	}
	inCart, err := p.toggler.Exists(ctx, relation.Cart, viewer, r.ID)
	if err != nil {
		return Recipe{}, fmt.Errorf("checking cart: %w", err)
	}

	return Recipe{
		ID:               r.ID,
		Tags:             tags,
		Author:           authorView,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}, nil
}

func (p *Projector) Recipes(ctx context.Context, recipes []database.Recipe, viewer *database.User) ([]Recipe, error) {
	views := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		v, err := p.Recipe(ctx, r, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Subscription renders one followed author: profile, subscription flag,
// authored-recipe count, and a bounded slice of recipe summaries.
// recipesLimit <= 0 means no bound.
func (p *Projector) Subscription(ctx context.Context, author database.User, viewer *database.User, recipesLimit int) (Subscription, error) {
	profile, err := p.Profile(ctx, author, viewer)
	if err != nil {
		return Subscription{}, err
	}

	recipes, err := p.store.ListRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return Subscription{}, fmt.Errorf("listing author recipes: %w", err)
	}
	count, err := p.store.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return Subscription{}, fmt.Errorf("counting author recipes: %w", err)
	}

	if recipesLimit > 0 && len(recipes) > recipesLimit {
		recipes = recipes[:recipesLimit]
	}
	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, Summary(r))
	}

	return Subscription{
		Email:        profile.Email,
		ID:           profile.ID,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		IsSubscribed: profile.IsSubscribed,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
