package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RecordAndRecent(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestRedisStore_RecordAndRecent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	testStore(t, NewRedisStore(client, nil))
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Unknown conversation reads empty.
	turns, err := store.Recent(ctx, "fresh")
	require.NoError(t, err)
	assert.Empty(t, turns)

	require.NoError(t, store.Record(ctx, "c1", "hello", "hi there"))
	require.NoError(t, store.Record(ctx, "c1", "what services?", "we offer plumbing"))

	turns, err = store.Recent(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{User: "hello", Assistant: "hi there"}, turns[0])
	assert.Equal(t, Turn{User: "what services?", Assistant: "we offer plumbing"}, turns[1])

	// No cross-conversation visibility.
	other, err := store.Recent(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_EvictsOldestBeyondCap(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStore(client, nil)
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			for i := 1; i <= MaxTurns+1; i++ {
				require.NoError(t, store.Record(ctx, "c1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
			}

			turns, err := store.Recent(ctx, "c1")
			require.NoError(t, err)
			require.Len(t, turns, MaxTurns, "the 7th turn evicts the 1st")
			assert.Equal(t, "q2", turns[0].User)
			assert.Equal(t, fmt.Sprintf("q%d", MaxTurns+1), turns[len(turns)-1].User)
		})
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "", Render(nil))

	turns := []Turn{
		{User: "hi", Assistant: "hello!"},
		{User: "do you cover delhi?", Assistant: "yes we do"},
	}
	want := "User: hi\nAssistant: hello!\nUser: do you cover delhi?\nAssistant: yes we do"
	assert.Equal(t, want, Render(turns))
}
