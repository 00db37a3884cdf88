package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-builders/school-bot/internal/domain/user"
	"github.com/open-builders/school-bot/internal/repository"
	"github.com/open-builders/school-bot/internal/repository/memory"
)

func TestBootstrapFirstUserBecomesAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, DefaultRewards)

	res, err := svc.Bootstrap(ctx, Newcomer{UserID: 1, FirstName: "Ali"})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.BecameAdmin)
	assert.Equal(t, 20, res.User.Coins)
	assert.False(t, res.User.InitialRegistrationComplete())
	assert.True(t, svc.IsAdmin(ctx, 1))

	res, err = svc.Bootstrap(ctx, Newcomer{UserID: 2})
	require.NoError(t, err)
	assert.False(t, res.BecameAdmin)
	assert.False(t, svc.IsAdmin(ctx, 2))
	assert.Equal(t, int64(1), svc.AdminID(ctx))
}

func TestBootstrapExistingUserUntouched(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, DefaultRewards)

	_, err := svc.Bootstrap(ctx, Newcomer{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, store.Users.AddCoins(ctx, 1, 5))

	res, err := svc.Bootstrap(ctx, Newcomer{UserID: 1})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, 25, res.User.Coins)
}

func TestBootstrapReferral(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, DefaultRewards)

	_, err := svc.Bootstrap(ctx, Newcomer{UserID: 10})
	require.NoError(t, err)

	tests := []struct {
		name     string
		newcomer Newcomer
		credited bool
	}{
		{"valid inviter", Newcomer{UserID: 11, Payload: "10"}, true},
		{"self invite", Newcomer{UserID: 12, Payload: "12"}, false},
		{"garbage payload", Newcomer{UserID: 13, Payload: "abc"}, false},
		{"unknown inviter", Newcomer{UserID: 14, Payload: "999"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := store.Users.Get(ctx, 10)
			require.NoError(t, err)

			res, err := svc.Bootstrap(ctx, tt.newcomer)
			require.NoError(t, err)
			assert.Equal(t, tt.credited, res.Inviter != nil)

			after, err := store.Users.Get(ctx, 10)
			require.NoError(t, err)
			if tt.credited {
				assert.Equal(t, before.Coins+10, after.Coins)
			} else {
				assert.Equal(t, before.Coins, after.Coins)
			}
		})
	}

	// an existing user following a referral link never credits again
	res, err := svc.Bootstrap(ctx, Newcomer{UserID: 11, Payload: "10"})
	require.NoError(t, err)
	assert.Nil(t, res.Inviter)
}

func TestBootstrapStoreUnavailable(t *testing.T) {
	svc := NewService(repository.Unavailable(), DefaultRewards)
	_, err := svc.Bootstrap(context.Background(), Newcomer{UserID: 1})
	assert.Error(t, err)
	assert.False(t, svc.IsAdmin(context.Background(), 1))
}

func TestAwardGrantedOnceInAnyOrder(t *testing.T) {
	orders := [][]user.Patch{
		{{Name: user.Ptr("Sara")}, {Age: user.Ptr(17)}, {School: user.Ptr("Alborz")}, {PhoneNumber: user.Ptr("+98912")}},
		{{PhoneNumber: user.Ptr("+98912")}, {School: user.Ptr("Alborz")}, {Age: user.Ptr(17)}, {Name: user.Ptr("Sara")}},
	}
	for i, order := range orders {
		ctx := context.Background()
		store := memory.NewStore()
		svc := NewService(store, DefaultRewards)
		_, err := svc.Bootstrap(ctx, Newcomer{UserID: 1})
		require.NoError(t, err)

		var grants int
		for j, p := range order {
			awarded, err := svc.Update(ctx, 1, p)
			require.NoError(t, err)
			if awarded {
				grants++
				assert.Equal(t, len(order)-1, j, "order %d: award only after the last field", i)
			}
		}
		// re-setting a field re-evaluates the condition
		awarded, err := svc.Update(ctx, 1, user.Patch{Name: user.Ptr("Sara B")})
		require.NoError(t, err)
		assert.False(t, awarded)

		assert.Equal(t, 1, grants)
		u, err := store.Users.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 70, u.Coins)
		assert.True(t, u.ProfileCompletionAwarded)
	}
}

func TestAwardConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, DefaultRewards)
	_, err := svc.Bootstrap(ctx, Newcomer{UserID: 1})
	require.NoError(t, err)
	_, err = svc.Update(ctx, 1, user.Patch{Name: user.Ptr("A"), Age: user.Ptr(15), School: user.Ptr("S"), PhoneNumber: user.Ptr("1")})
	require.NoError(t, err)
	require.NoError(t, store.Users.Upsert(ctx, 1, user.Patch{ProfileCompletionAwarded: user.Ptr(false), Coins: user.Ptr(0)}, true))

	var wg sync.WaitGroup
	var mu sync.Mutex
	grants := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			awarded, err := svc.Update(ctx, 1, user.Patch{Age: user.Ptr(16)})
			assert.NoError(t, err)
			if awarded {
				mu.Lock()
				grants++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, grants)
}

func TestUpdateStoreUnavailable(t *testing.T) {
	svc := NewService(repository.Unavailable(), DefaultRewards)
	_, err := svc.Update(context.Background(), 1, user.Patch{Name: user.Ptr("A")})
	assert.Error(t, err)
}
