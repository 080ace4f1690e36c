// Package setup is responsible for setting up components at boot.
package setup

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Parker-ink/foodgram-project-react/internal/argon2id"
	"github.com/Parker-ink/foodgram-project-react/internal/config"
	"github.com/Parker-ink/foodgram-project-react/internal/database"
	"github.com/Parker-ink/foodgram-project-react/internal/filestore"
	"github.com/Parker-ink/foodgram-project-react/internal/ingest"
	"github.com/Parker-ink/foodgram-project-react/internal/password"
)

// Database connects to Postgres and ensures the schema is applied.
func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	pool, err := pgxpool.New(ctx, conf.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return db, nil
}

// FileStore prepares the disk-backed media store.
func FileStore(conf config.Config) (filestore.FileStore, error) {
	volume, err := filepath.Abs(conf.Media.Volume)
	if err != nil {
		return filestore.FileStore{}, fmt.Errorf("resolving media volume: %w", err)
	}
	return filestore.New(volume, conf.Media.URLPrefix), nil
}

// Admin creates the bootstrap admin account if none exists.
func Admin(ctx context.Context, db database.Store, conf config.Config) error {
	admin := conf.Admin
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	if _, err := mail.ParseAddress(admin.Email); err != nil {
		return fmt.Errorf("parsing admin email: %w", err)
	}
	if err := password.ValidatePassword(admin.Password); err != nil {
		return fmt.Errorf("validating admin password: %w", err)
	}

	count, err := db.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := argon2id.EncodeHash(admin.Password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	username := admin.Username
	if username == "" {
		username = "admin"
	}
	_, err = db.CreateUser(ctx, database.CreateUserParams{
		Email:        admin.Email,
		Username:     username,
		FirstName:    "admin",
		LastName:     "admin",
		PasswordHash: hash,
		Role:         database.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

// Ingredients bulk-loads the ingredient reference data when a CSV path is
// configured. The load is idempotent.
func Ingredients(ctx context.Context, db database.Store, conf config.Config) (int, error) {
	if conf.IngredientsCSV == "" {
		return 0, nil
	}

	file, err := os.Open(conf.IngredientsCSV)
	if err != nil {
		return 0, fmt.Errorf("opening ingredients csv: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ingest.Ingredients(ctx, db, file)
}
