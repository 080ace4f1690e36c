package database

import "context"

// The three user-scoped join relations share one shape: insert guarded by a
// unique (user, target) constraint, delete reporting whether a row existed,
// and an existence probe. The relation package binds these per kind.

func (q *Queries) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)`, userID, recipeID)
	return err
}

func (q *Queries) RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) FavoriteExists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2)`,
		userID, recipeID).Scan(&exists)
	return exists, err
}

func (q *Queries) AddCart(ctx context.Context, userID, recipeID int64) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO carts (user_id, recipe_id) VALUES ($1, $2)`, userID, recipeID)
	return err
}

func (q *Queries) RemoveCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM carts WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) CartExists(ctx context.Context, userID, recipeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM carts WHERE user_id = $1 AND recipe_id = $2)`,
		userID, recipeID).Scan(&exists)
	return exists, err
}

func (q *Queries) AddFollow(ctx context.Context, userID, authorID int64) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO follows (user_id, author_id) VALUES ($1, $2)`, userID, authorID)
	return err
}

func (q *Queries) RemoveFollow(ctx context.Context, userID, authorID int64) (bool, error) {
	tag, err := q.db.Exec(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) FollowExists(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID).Scan(&exists)
	return exists, err
}

// ListFollowing returns the authors the user follows, oldest follow first.
func (q *Queries) ListFollowing(ctx context.Context, userID int64) ([]User, error) {
	rows, err := q.db.Query(ctx, `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name,
		       u.password_hash, u.role, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.user_id = $1
		ORDER BY f.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}
