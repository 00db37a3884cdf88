package user

import "context"

// Repository defines persistence operations for User aggregate.
// Get returns a NOT_FOUND AppError for unknown ids; every operation returns
// STORE_UNAVAILABLE when the backing store cannot be reached.
type Repository interface {
	Get(ctx context.Context, id int64) (*User, error)
	// Upsert with merge=false replaces the whole record with the patch.
	Upsert(ctx context.Context, id int64, p Patch, merge bool) error
	AddCoins(ctx context.Context, id int64, delta int) error
	// GrantCompletionAward atomically adds bonus and sets the award flag when
	// the profile is complete and the flag is unset. It reports whether the
	// award was granted by this call.
	GrantCompletionAward(ctx context.Context, id int64, bonus int) (bool, error)
}
