package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := Session{
		ID:        "abc",
		UserID:    "user-1",
		Username:  "alice",
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "admin", got.Role)

	require.NoError(t, store.Delete(ctx, "abc"))

	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_GetUnknownReturnsNil(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiredSessionIsDropped(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{
		ID:        "old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Delete(context.Background(), "never-existed"))
}
