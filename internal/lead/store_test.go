package lead

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftStore_CRUD(t *testing.T) {
	testDraftStore(t, NewMemoryDraftStore())
}

func TestRedisDraftStore_CRUD(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	testDraftStore(t, NewRedisDraftStore(client, nil))
}

func testDraftStore(t *testing.T, store DraftStore) {
	t.Helper()
	ctx := context.Background()

	// Absent draft reads as (nil, nil).
	draft, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, draft)

	in := &Draft{
		Step:      StepService,
		Name:      "Rohan Sharma",
		Phone:     "9876543210",
		StartedAt: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, "c1", in))

	out, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, StepService, out.Step)
	assert.Equal(t, "Rohan Sharma", out.Name)
	assert.Equal(t, "9876543210", out.Phone)

	// Drafts are isolated per conversation.
	other, err := store.Get(ctx, "c2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Delete(ctx, "c1"))
	gone, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "c1"))
}

func TestMemoryDraftStore_CopiesOnPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	in := &Draft{Step: StepName}
	require.NoError(t, store.Put(ctx, "c1", in))
	in.Step = StepConfirm

	out, err := store.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, StepName, out.Step, "mutating the caller's draft must not affect the stored copy")
}
