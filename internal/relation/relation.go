// Package relation implements the user-scoped join relations (favorite,
// shopping cart, follow) behind one generic add/remove/exists contract.
package relation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

var (
	ErrSelfFollow     = errors.New("cannot follow self")
	ErrAlreadyExists  = errors.New("relation already exists")
	ErrNotFound       = errors.New("no existing relation")
	ErrTargetNotFound = errors.New("target not found")
	// ErrConflict reports a unique-constraint race: another request created
	// the same relation between our existence check and insert.
	ErrConflict = errors.New("relation created concurrently")
)

// Kind describes one relation: which store capabilities implement it and
// which pair rule applies. The three kinds share the Toggler logic.
type Kind struct {
	name        string
	checkPair   func(userID, targetID int64) error
	checkTarget func(ctx context.Context, q database.Querier, targetID int64) error
	add         func(ctx context.Context, q database.Querier, userID, targetID int64) error
	remove      func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error)
	exists      func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error)
}

func (k Kind) String() string { return k.name }

var Favorite = Kind{
	name:        "favorite",
	checkTarget: recipeExists,
	add: func(ctx context.Context, q database.Querier, userID, targetID int64) error {
		return q.AddFavorite(ctx, userID, targetID)
	},
	remove: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.RemoveFavorite(ctx, userID, targetID)
	},
	exists: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.FavoriteExists(ctx, userID, targetID)
	},
}

var Cart = Kind{
	name:        "cart",
	checkTarget: recipeExists,
	add: func(ctx context.Context, q database.Querier, userID, targetID int64) error {
		return q.AddCart(ctx, userID, targetID)
	},
	remove: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.RemoveCart(ctx, userID, targetID)
	},
	exists: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.CartExists(ctx, userID, targetID)
	},
}

var Follow = Kind{
	name: "follow",
	checkPair: func(userID, targetID int64) error {
		if userID == targetID {
			return ErrSelfFollow
		}
		return nil
	},
	checkTarget: userExists,
	add: func(ctx context.Context, q database.Querier, userID, targetID int64) error {
		return q.AddFollow(ctx, userID, targetID)
	},
	remove: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.RemoveFollow(ctx, userID, targetID)
	},
	exists: func(ctx context.Context, q database.Querier, userID, targetID int64) (bool, error) {
		return q.FollowExists(ctx, userID, targetID)
	},
}

type Toggler struct {
	store database.Store
}

func NewToggler(store database.Store) *Toggler {
	return &Toggler{store: store}
}

// Add creates the relation. Re-adding an existing pair is rejected, not
// absorbed. A unique-violation lost race surfaces as ErrConflict.
func (t *Toggler) Add(ctx context.Context, kind Kind, userID, targetID int64) error {
	if kind.checkPair != nil {
		if err := kind.checkPair(userID, targetID); err != nil {
			return err
		}
	}

	return t.store.WithTx(ctx, func(q database.Querier) error {
		if err := kind.checkTarget(ctx, q, targetID); err != nil {
			return err
		}

		exists, err := kind.exists(ctx, q, userID, targetID)
		if err != nil {
			return fmt.Errorf("checking %s existence: %w", kind.name, err)
		}
		if exists {
			return ErrAlreadyExists
		}

		if err := kind.add(ctx, q, userID, targetID); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("adding %s: %w", kind.name, err)
		}
		return nil
	})
}

// Remove deletes the relation, failing with ErrNotFound when no row exists.
func (t *Toggler) Remove(ctx context.Context, kind Kind, userID, targetID int64) error {
	return t.store.WithTx(ctx, func(q database.Querier) error {
		if err := kind.checkTarget(ctx, q, targetID); err != nil {
			return err
		}

		removed, err := kind.remove(ctx, q, userID, targetID)
		if err != nil {
			return fmt.Errorf("removing %s: %w", kind.name, err)
		}
		if !removed {
			return ErrNotFound
		}
		return nil
	})
}

// Exists answers the per-viewer flags used by projections. A nil viewer is
// anonymous and resolves to false without touching the store.
func (t *Toggler) Exists(ctx context.Context, kind Kind, viewer *database.User, targetID int64) (bool, error) {
	if viewer == nil {
		return false, nil
	}
	return kind.exists(ctx, t.store, viewer.ID, targetID)
}

func recipeExists(ctx context.Context, q database.Querier, recipeID int64) error {
	if _, err := q.GetRecipe(ctx, recipeID); errors.Is(err, database.ErrNotFound) {
		return ErrTargetNotFound
	} else if err != nil {
		return fmt.Errorf("fetching recipe: %w", err)
	}
	return nil
}

func userExists(ctx context.Context, q database.Querier, userID int64) error {
	if _, err := q.GetUserByID(ctx, userID); errors.Is(err, database.ErrNotFound) {
		return ErrTargetNotFound
	} else if err != nil {
		return fmt.Errorf("fetching user: %w", err)
	}
	return nil
}
