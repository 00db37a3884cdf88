package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rplatform "github.com/open-builders/school-bot/internal/platform/redis"
	"github.com/open-builders/school-bot/internal/scene"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := rplatform.Open(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, time.Hour), mr
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	sess, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.False(t, sess.Active())

	require.NoError(t, store.Save(ctx, 42, &scene.Session{
		Scene: "manage_schools",
		Step:  2,
		State: scene.State{
			"province": "تهران",
			"schools":  []string{"A", "B"},
			"chat_id":  int64(-1001234567890),
		},
	}))
	assert.True(t, mr.Exists("session:42"))
	assert.Equal(t, time.Hour, mr.TTL("session:42"))

	got, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "manage_schools", got.Scene)
	assert.Equal(t, 2, got.Step)
	assert.Equal(t, "تهران", got.State.String("province"))
	assert.Equal(t, []string{"A", "B"}, got.State.Strings("schools"))
	assert.Equal(t, int64(-1001234567890), got.State.Int64("chat_id"))
}

func TestSessionClearedIsDeleted(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(ctx, 7, &scene.Session{Scene: "enter_name"}))
	require.NoError(t, store.Save(ctx, 7, &scene.Session{}))
	assert.False(t, mr.Exists("session:7"))

	require.NoError(t, store.Save(ctx, 7, &scene.Session{JustRegistered: true}))
	got, err := store.Load(ctx, 7)
	require.NoError(t, err)
	assert.True(t, got.JustRegistered)
}

func TestSessionStoreDown(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	mr.Close()

	_, err := store.Load(ctx, 1)
	assert.Error(t, err)
}

func TestEngineOnRedisSessions(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var collected []string
	e := scene.NewEngine(store, &scene.Scene{
		Name: "collect",
		OnText: func(_ context.Context, s *scene.Scope) (scene.Outcome, error) {
			names := append(s.State.Strings("names"), s.Event.Text)
			s.State["names"] = names
			collected = names
			return scene.Await, nil
		},
	})

	require.NoError(t, e.Enter(ctx, textEvent(5, ""), "collect", nil))
	for _, name := range []string{"A", "B", "C"} {
		_, err := e.Dispatch(ctx, textEvent(5, name))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"A", "B", "C"}, collected)
}
