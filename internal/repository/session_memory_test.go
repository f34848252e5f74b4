package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMemory_UnknownSessionIsEmpty(t *testing.T) {
	store := NewSessionMemory(time.Minute)

	turns, err := store.History(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSessionMemory_SaveAndReload(t *testing.T) {
	store := NewSessionMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "s1", []string{"q1", "a1"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "a1"}, turns)
}

func TestSessionMemory_OverwriteReplacesTurns(t *testing.T) {
	store := NewSessionMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "s1", []string{"q1", "a1"}))
	require.NoError(t, store.SaveHistory(ctx, "s1", []string{"q2", "a2"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q2", "a2"}, turns)
}

func TestSessionMemory_ReturnedSliceIsACopy(t *testing.T) {
	store := NewSessionMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "s1", []string{"q1", "a1"}))

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	turns[0] = "mutated"

	again, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "q1", again[0])
}

func TestSessionMemory_ExpiresAfterTTL(t *testing.T) {
	store := NewSessionMemory(10 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.SaveHistory(ctx, "s1", []string{"q1", "a1"}))
	time.Sleep(30 * time.Millisecond)

	turns, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
