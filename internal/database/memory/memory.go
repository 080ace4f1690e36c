// Package memory provides an in-memory implementation of the store
// contract. It mirrors the Postgres layer's semantics, including unique
// constraint violations and transactional rollback, and backs the package
// tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

type pair struct {
	ID     int64
	UserID int64
	Target int64
}

type amountRow struct {
	ID           int64
	RecipeID     int64
	IngredientID int64
	Amount       int32
}

type state struct {
	seq         int64
	users       map[int64]database.User
	ingredients map[int64]database.Ingredient
	tags        map[int64]database.Tag
	recipes     map[int64]database.Recipe
	amounts     []amountRow
	recipeTags  map[int64][]int64
	favorites   []pair
	carts       []pair
	follows     []pair
}

func newState() *state {
	return &state{
		users:       map[int64]database.User{},
		ingredients: map[int64]database.Ingredient{},
		tags:        map[int64]database.Tag{},
		recipes:     map[int64]database.Recipe{},
		recipeTags:  map[int64][]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:         s.seq,
		users:       maps.Clone(s.users),
		ingredients: maps.Clone(s.ingredients),
		tags:        maps.Clone(s.tags),
		recipes:     maps.Clone(s.recipes),
		amounts:     slices.Clone(s.amounts),
		recipeTags:  map[int64][]int64{},
		favorites:   slices.Clone(s.favorites),
		carts:       slices.Clone(s.carts),
		follows:     slices.Clone(s.follows),
	}
	for recipeID, tagIDs := range s.recipeTags {
		c.recipeTags[recipeID] = slices.Clone(tagIDs)
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// Store implements database.Store over in-process maps.
type Store struct {
	mu    sync.Mutex
	state *state
}

var _ database.Store = (*Store)(nil)

func New() *Store {
	return &Store{state: newState()}
}

// WithTx applies fn against a copy of the state and installs the copy only
// when fn succeeds, matching the commit and rollback semantics of the
// Postgres layer.
func (s *Store) WithTx(ctx context.Context, fn func(database.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scratch := s.state.clone()
	if err := fn(&querier{state: scratch}); err != nil {
		return err
	}
	s.state = scratch
	return nil
}

// querier operates on a state without locking; Store wraps it per call.
type querier struct {
	state *state
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func (s *Store) run(fn func(q *querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&querier{state: s.state})
}
