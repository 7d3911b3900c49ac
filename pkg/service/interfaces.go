package service

import (
	"context"
	"errors"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/state"
)

// ErrNotFound is returned for user ids that have no stored game state
var ErrNotFound = errors.New("game state not found")

// Mutation changes a working copy of a user's state. Returning an error
// discards the copy and leaves the stored state untouched.
type Mutation func(gs *state.GameState) error

// StateFactory builds the initial state for a user seen for the first time
type StateFactory func(userID string, now time.Time) *state.GameState

// StateStore defines the interface for accessing per-user game state.
// Every state handed out is a snapshot; mutating it has no effect on the store.
type StateStore interface {
	// GetOrCreate returns the state of userID, seeding it first when absent.
	// created reports whether this call seeded it.
	GetOrCreate(ctx context.Context, userID string) (gs *state.GameState, created bool, err error)
	Get(ctx context.Context, userID string) (*state.GameState, error)
	// Apply runs mutate atomically with respect to other operations on the same user
	Apply(ctx context.Context, userID string, mutate Mutation) (*state.GameState, error)
	List(ctx context.Context) ([]*state.GameState, error)
}
