package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		params.Email, params.Username, params.FirstName, params.LastName,
		params.PasswordHash, params.Role,
	).Scan(&id)
	return id, err
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	return q.scanUser(q.db.QueryRow(ctx, `
		SELECT id, email, username, first_name, last_name, password_hash, role, created_at
		FROM users WHERE id = $1`, id))
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return q.scanUser(q.db.QueryRow(ctx, `
		SELECT id, email, username, first_name, last_name, password_hash, role, created_at
		FROM users WHERE email = $1`, email))
}

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, email, username, first_name, last_name, password_hash, role, created_at
		FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (q *Queries) GetAdminCount(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE role = 'admin'`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (q *Queries) scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, notFound(err)
}
