package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

var _ database.Querier = (*querier)(nil)

func (q *querier) CreateUser(ctx context.Context, params database.CreateUserParams) (int64, error) {
	for _, u := range q.state.users {
		if u.Email == params.Email {
			return 0, uniqueViolation("users_email_key")
		}
		if u.Username == params.Username {
			return 0, uniqueViolation("users_username_key")
		}
	}
	role := params.Role
	if role == "" {
		role = database.RoleUser
	}
	id := q.state.nextID()
	q.state.users[id] = database.User{
		ID:           id,
		Email:        params.Email,
		Username:     params.Username,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: params.PasswordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	return id, nil
}

func (q *querier) GetUserByID(ctx context.Context, id int64) (database.User, error) {
	u, ok := q.state.users[id]
	if !ok {
		return database.User{}, database.ErrNotFound
	}
	return u, nil
}

func (q *querier) GetUserByEmail(ctx context.Context, email string) (database.User, error) {
	for _, u := range q.state.users {
		if u.Email == email {
			return u, nil
		}
	}
	return database.User{}, database.ErrNotFound
}

func (q *querier) ListUsers(ctx context.Context) ([]database.User, error) {
	users := make([]database.User, 0, len(q.state.users))
	for _, u := range q.state.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b database.User) int { return int(a.ID - b.ID) })
	return users, nil
}

func (q *querier) GetAdminCount(ctx context.Context) (int64, error) {
	var count int64
	for _, u := range q.state.users {
		if u.Role == database.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func (q *querier) CreateIngredient(ctx context.Context, params database.CreateIngredientParams) (int64, error) {
	for _, ing := range q.state.ingredients {
		if ing.Name == params.Name && ing.MeasurementUnit == params.MeasurementUnit {
			return ing.ID, nil
		}
	}
	id := q.state.nextID()
	q.state.ingredients[id] = database.Ingredient{
		ID:              id,
		Name:            params.Name,
		MeasurementUnit: params.MeasurementUnit,
	}
	return id, nil
}

func (q *querier) GetIngredient(ctx context.Context, id int64) (database.Ingredient, error) {
	ing, ok := q.state.ingredients[id]
	if !ok {
		return database.Ingredient{}, database.ErrNotFound
	}
	return ing, nil
}

func (q *querier) ListIngredients(ctx context.Context, namePrefix string) ([]database.Ingredient, error) {
	ingredients := []database.Ingredient{}
	for _, ing := range q.state.ingredients {
		if strings.HasPrefix(ing.Name, namePrefix) {
			ingredients = append(ingredients, ing)
		}
	}
	slices.SortFunc(ingredients, func(a, b database.Ingredient) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ingredients, nil
}

func (q *querier) CreateTag(ctx context.Context, params database.CreateTagParams) (int64, error) {
	for _, t := range q.state.tags {
		if t.Name == params.Name {
			return 0, uniqueViolation("tags_name_key")
		}
		if t.Slug == params.Slug {
			return 0, uniqueViolation("tags_slug_key")
		}
	}
	id := q.state.nextID()
	q.state.tags[id] = database.Tag{ID: id, Name: params.Name, Color: params.Color, Slug: params.Slug}
	return id, nil
}

func (q *querier) GetTag(ctx context.Context, id int64) (database.Tag, error) {
	t, ok := q.state.tags[id]
	if !ok {
		return database.Tag{}, database.ErrNotFound
	}
	return t, nil
}

func (q *querier) ListTags(ctx context.Context) ([]database.Tag, error) {
	tags := make([]database.Tag, 0, len(q.state.tags))
	for _, t := range q.state.tags {
		tags = append(tags, t)
	}
	sortTags(tags)
	return tags, nil
}

func (q *querier) ListRecipeTags(ctx context.Context, recipeID int64) ([]database.Tag, error) {
	tags := []database.Tag{}
	for _, tagID := range q.state.recipeTags[recipeID] {
		if t, ok := q.state.tags[tagID]; ok {
			tags = append(tags, t)
		}
	}
	sortTags(tags)
	return tags, nil
}

func (q *querier) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	deduped := []int64{}
	for _, tagID := range tagIDs {
		if !slices.Contains(deduped, tagID) {
			deduped = append(deduped, tagID)
		}
	}
	q.state.recipeTags[recipeID] = deduped
	return nil
}

func (q *querier) CreateRecipe(ctx context.Context, params database.CreateRecipeParams) (int64, error) {
	id := q.state.nextID()
	q.state.recipes[id] = database.Recipe{
		ID:          id,
		AuthorID:    params.AuthorID,
		Name:        params.Name,
		Image:       params.Image,
		Text:        params.Text,
		CookingTime: params.CookingTime,
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (q *querier) UpdateRecipe(ctx context.Context, params database.UpdateRecipeParams) error {
	r, ok := q.state.recipes[params.ID]
	if !ok {
		return database.ErrNotFound
	}
	r.Name = params.Name
	r.Image = params.Image
	r.Text = params.Text
	r.CookingTime = params.CookingTime
	q.state.recipes[params.ID] = r
	return nil
}

func (q *querier) DeleteRecipe(ctx context.Context, id int64) error {
	if _, ok := q.state.recipes[id]; !ok {
		return database.ErrNotFound
	}
	delete(q.state.recipes, id)
	delete(q.state.recipeTags, id)
	q.state.amounts = slices.DeleteFunc(q.state.amounts, func(a amountRow) bool {
		return a.RecipeID == id
	})
	q.state.favorites = slices.DeleteFunc(q.state.favorites, func(p pair) bool {
		return p.Target == id
	})
	q.state.carts = slices.DeleteFunc(q.state.carts, func(p pair) bool {
		return p.Target == id
	})
	return nil
}

func (q *querier) GetRecipe(ctx context.Context, id int64) (database.Recipe, error) {
	r, ok := q.state.recipes[id]
	if !ok {
		return database.Recipe{}, database.ErrNotFound
	}
	return r, nil
}

func (q *querier) ListRecipes(ctx context.Context, params database.ListRecipesParams) ([]database.Recipe, error) {
	recipes := []database.Recipe{}
	for _, r := range q.state.recipes {
		if params.AuthorID != 0 && r.AuthorID != params.AuthorID {
			continue
		}
		if len(params.TagSlugs) > 0 && !q.recipeHasTagSlug(r.ID, params.TagSlugs) {
			continue
		}
		if params.FavoritedBy != 0 && !containsPair(q.state.favorites, params.FavoritedBy, r.ID) {
			continue
		}
		if params.InCartOf != 0 && !containsPair(q.state.carts, params.InCartOf, r.ID) {
			continue
		}
		recipes = append(recipes, r)
	}
	sortRecipesNewestFirst(recipes)
	return recipes, nil
}

func (q *querier) ListRecipesByAuthor(ctx context.Context, authorID int64) ([]database.Recipe, error) {
	recipes := []database.Recipe{}
	for _, r := range q.state.recipes {
		if r.AuthorID == authorID {
			recipes = append(recipes, r)
		}
	}
	sortRecipesNewestFirst(recipes)
	return recipes, nil
}

func (q *querier) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	for _, r := range q.state.recipes {
		if r.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (q *querier) InsertIngredientAmount(ctx context.Context, params database.InsertIngredientAmountParams) error {
	for _, a := range q.state.amounts {
		if a.RecipeID == params.RecipeID && a.IngredientID == params.IngredientID {
			return uniqueViolation("ingredient_amounts_recipe_id_ingredient_id_key")
		}
	}
	q.state.amounts = append(q.state.amounts, amountRow{
		ID:           q.state.nextID(),
		RecipeID:     params.RecipeID,
		IngredientID: params.IngredientID,
		Amount:       params.Amount,
	})
	return nil
}

func (q *querier) DeleteIngredientAmounts(ctx context.Context, recipeID int64) error {
	q.state.amounts = slices.DeleteFunc(q.state.amounts, func(a amountRow) bool {
		return a.RecipeID == recipeID
	})
	return nil
}

func (q *querier) ListIngredientAmounts(ctx context.Context, recipeID int64) ([]database.IngredientAmountRow, error) {
	rows := []database.IngredientAmountRow{}
	for _, a := range q.state.amounts {
		if a.RecipeID != recipeID {
			continue
		}
		ing := q.state.ingredients[a.IngredientID]
		rows = append(rows, database.IngredientAmountRow{
			IngredientID:    a.IngredientID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          a.Amount,
		})
	}
	slices.SortFunc(rows, func(a, b database.IngredientAmountRow) int {
		return strings.Compare(a.Name, b.Name)
	})
	return rows, nil
}

func (q *querier) ListCartIngredients(ctx context.Context, userID int64) ([]database.CartIngredientRow, error) {
	rows := []database.CartIngredientRow{}
	for _, c := range q.state.carts {
		if c.UserID != userID {
			continue
		}
		for _, a := range q.state.amounts {
			if a.RecipeID != c.Target {
				continue
			}
			ing := q.state.ingredients[a.IngredientID]
			rows = append(rows, database.CartIngredientRow{
				Name:            ing.Name,
				MeasurementUnit: ing.MeasurementUnit,
				Amount:          a.Amount,
			})
		}
	}
	return rows, nil
}

func (q *querier) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	return q.addPair(&q.state.favorites, userID, recipeID, "favorites_user_id_recipe_id_key")
}

func (q *querier) RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	return removePair(&q.state.favorites, userID, recipeID), nil
}

func (q *querier) FavoriteExists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return containsPair(q.state.favorites, userID, recipeID), nil
}

func (q *querier) AddCart(ctx context.Context, userID, recipeID int64) error {
	return q.addPair(&q.state.carts, userID, recipeID, "carts_user_id_recipe_id_key")
}

func (q *querier) RemoveCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	return removePair(&q.state.carts, userID, recipeID), nil
}

func (q *querier) CartExists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return containsPair(q.state.carts, userID, recipeID), nil
}

func (q *querier) AddFollow(ctx context.Context, userID, authorID int64) error {
	return q.addPair(&q.state.follows, userID, authorID, "follows_user_id_author_id_key")
}

func (q *querier) RemoveFollow(ctx context.Context, userID, authorID int64) (bool, error) {
	return removePair(&q.state.follows, userID, authorID), nil
}

func (q *querier) FollowExists(ctx context.Context, userID, authorID int64) (bool, error) {
	return containsPair(q.state.follows, userID, authorID), nil
}

func (q *querier) ListFollowing(ctx context.Context, userID int64) ([]database.User, error) {
	follows := []pair{}
	for _, f := range q.state.follows {
		if f.UserID == userID {
			follows = append(follows, f)
		}
	}
	slices.SortFunc(follows, func(a, b pair) int { return int(a.ID - b.ID) })

	authors := []database.User{}
	for _, f := range follows {
		if u, ok := q.state.users[f.Target]; ok {
			authors = append(authors, u)
		}
	}
	return authors, nil
}

func (q *querier) addPair(pairs *[]pair, userID, target int64, constraint string) error {
	if containsPair(*pairs, userID, target) {
		return uniqueViolation(constraint)
	}
	*pairs = append(*pairs, pair{ID: q.state.nextID(), UserID: userID, Target: target})
	return nil
}

func removePair(pairs *[]pair, userID, target int64) bool {
	before := len(*pairs)
	*pairs = slices.DeleteFunc(*pairs, func(p pair) bool {
		return p.UserID == userID && p.Target == target
	})
	return len(*pairs) < before
}

func containsPair(pairs []pair, userID, target int64) bool {
	return slices.ContainsFunc(pairs, func(p pair) bool {
		return p.UserID == userID && p.Target == target
	})
}

func (q *querier) recipeHasTagSlug(recipeID int64, slugs []string) bool {
	for _, tagID := range q.state.recipeTags[recipeID] {
		if t, ok := q.state.tags[tagID]; ok && slices.Contains(slugs, t.Slug) {
			return true
		}
	}
	return false
}

func sortTags(tags []database.Tag) {
	slices.SortFunc(tags, func(a, b database.Tag) int { return strings.Compare(a.Name, b.Name) })
}

func sortRecipesNewestFirst(recipes []database.Recipe) {
	slices.SortFunc(recipes, func(a, b database.Recipe) int { return int(b.ID - a.ID) })
}
