package state

import "context"

// Store persists one session value of type T per Telegram user.
type Store[T any] interface {
	// Get returns the stored value and whether one exists.
	Get(ctx context.Context, userID int64) (T, bool, error)
	Set(ctx context.Context, userID int64, value T) error
	// Clear removes the value; clearing an absent entry is not an error.
	Clear(ctx context.Context, userID int64) error
}
