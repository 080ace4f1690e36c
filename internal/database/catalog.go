package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Ingredient and tag rows are reference data: created out-of-band (CSV bulk
// load, admin endpoints) and only referenced by recipes.

func (q *Queries) CreateIngredient(ctx context.Context, params CreateIngredientParams) (int64, error) {
	// Re-running the bulk load must not duplicate rows, so an existing
	// (name, unit) pair returns the existing id.
	var id int64
	err := q.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO ingredients (name, measurement_unit)
			VALUES ($1, $2)
			ON CONFLICT (name, measurement_unit) DO NOTHING
			RETURNING id
		)
		SELECT id FROM inserted
		UNION ALL
		SELECT id FROM ingredients WHERE name = $1 AND measurement_unit = $2
		LIMIT 1`,
		params.Name, params.MeasurementUnit,
	).Scan(&id)
	return id, err
}

func (q *Queries) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	var ing Ingredient
	err := q.db.QueryRow(ctx, `
		SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id,
	).Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit)
	return ing, notFound(err)
}

func (q *Queries) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, measurement_unit FROM ingredients
		WHERE name LIKE $1 || '%'
		ORDER BY name`, namePrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []Ingredient{}
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (q *Queries) CreateTag(ctx context.Context, params CreateTagParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) RETURNING id`,
		params.Name, params.Color, params.Slug,
	).Scan(&id)
	return id, err
}

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	var t Tag
	err := q.db.QueryRow(ctx, `
		SELECT id, name, color, slug FROM tags WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, notFound(err)
}

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func (q *Queries) ListRecipeTags(ctx context.Context, recipeID int64) ([]Tag, error) {
	rows, err := q.db.Query(ctx, `
		SELECT t.id, t.name, t.color, t.slug
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = $1
		ORDER BY t.name`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

// SetRecipeTags replaces the recipe's tag set with exactly tagIDs.
func (q *Queries) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	if _, err := q.db.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipeID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := q.db.Exec(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, recipeID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func scanTags(rows pgx.Rows) ([]Tag, error) {
	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
