package planstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	store, err := New(4)
	require.NoError(t, err)

	text := "Day 1:\n- Breakfast: oats 🥣\r\n"
	id := store.Put(text)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, text, got)
	assert.Equal(t, 1, store.Len())
}

func TestDistinctIDs(t *testing.T) {
	store, err := New(4)
	require.NoError(t, err)

	assert.NotEqual(t, store.Put("same"), store.Put("same"))
}

func TestEvictsOldest(t *testing.T) {
	store, err := New(2)
	require.NoError(t, err)

	first := store.Put("one")
	store.Put("two")
	store.Put("three")

	_, ok := store.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestUnknownID(t *testing.T) {
	store, err := New(1)
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestInvalidSize(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}
