package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const recipeColumns = `id, author_id, name, image, text, cooking_time, created_at`

func (q *Queries) CreateRecipe(ctx context.Context, params CreateRecipeParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO recipes (author_id, name, image, text, cooking_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		params.AuthorID, params.Name, params.Image, params.Text, params.CookingTime,
	).Scan(&id)
	return id, err
}

func (q *Queries) UpdateRecipe(ctx context.Context, params UpdateRecipeParams) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE recipes SET name = $2, image = $3, text = $4, cooking_time = $5
		WHERE id = $1`,
		params.ID, params.Name, params.Image, params.Text, params.CookingTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe. Ingredient amounts, favorites and cart
// rows cascade at the schema level.
func (q *Queries) DeleteRecipe(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) GetRecipe(ctx context.Context, id int64) (Recipe, error) {
	var r Recipe
	err := q.db.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id).
		Scan(&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.CreatedAt)
	return r, notFound(err)
}

// ListRecipes applies the optional attribute filters and returns newest-first.
func (q *Queries) ListRecipes(ctx context.Context, params ListRecipesParams) ([]Recipe, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.AuthorID != 0 {
		conds = append(conds, `r.author_id = `+arg(params.AuthorID))
	}
	if len(params.TagSlugs) > 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(`+arg(params.TagSlugs)+`))`)
	}
	if params.FavoritedBy != 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.recipe_id = r.id AND f.user_id = `+arg(params.FavoritedBy)+`)`)
	}
	if params.InCartOf != 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM carts c
			WHERE c.recipe_id = r.id AND c.user_id = `+arg(params.InCartOf)+`)`)
	}

	query := `SELECT ` + recipeColumns + ` FROM recipes r`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY r.id DESC`

	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func (q *Queries) ListRecipesByAuthor(ctx context.Context, authorID int64) ([]Recipe, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE author_id = $1 ORDER BY id DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

func (q *Queries) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM recipes WHERE author_id = $1`, authorID).
		Scan(&count)
	return count, err
}

func (q *Queries) InsertIngredientAmount(ctx context.Context, params InsertIngredientAmountParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO ingredient_amounts (recipe_id, ingredient_id, amount)
		VALUES ($1, $2, $3)`,
		params.RecipeID, params.IngredientID, params.Amount)
	return err
}

func (q *Queries) DeleteIngredientAmounts(ctx context.Context, recipeID int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM ingredient_amounts WHERE recipe_id = $1`, recipeID)
	return err
}

func (q *Queries) ListIngredientAmounts(ctx context.Context, recipeID int64) ([]IngredientAmountRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT i.id, i.name, i.measurement_unit, ia.amount
		FROM ingredient_amounts ia
		JOIN ingredients i ON i.id = ia.ingredient_id
		WHERE ia.recipe_id = $1
		ORDER BY i.name`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	amounts := []IngredientAmountRow{}
	for rows.Next() {
		var row IngredientAmountRow
		if err := rows.Scan(&row.IngredientID, &row.Name, &row.MeasurementUnit, &row.Amount); err != nil {
			return nil, err
		}
		amounts = append(amounts, row)
	}
	return amounts, rows.Err()
}

// ListCartIngredients returns the unaggregated ingredient amounts of every
// recipe in the user's cart.
func (q *Queries) ListCartIngredients(ctx context.Context, userID int64) ([]CartIngredientRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT i.name, i.measurement_unit, ia.amount
		FROM carts c
		JOIN ingredient_amounts ia ON ia.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ia.ingredient_id
		WHERE c.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []CartIngredientRow{}
	for rows.Next() {
		var row CartIngredientRow
		if err := rows.Scan(&row.Name, &row.MeasurementUnit, &row.Amount); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}

func scanRecipes(rows pgx.Rows) ([]Recipe, error) {
	recipes := []Recipe{}
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Image, &r.Text,
			&r.CookingTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}
