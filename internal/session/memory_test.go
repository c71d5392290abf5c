package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habithero/habitherod/internal/models"
)

func TestMemoryStore_PutGetClear(t *testing.T) {
	store := NewMemoryStore()

	err := store.Put(&models.Session{
		ID:      "sid-1",
		Address: "0x2222222222222222222222222222222222222222",
	})
	require.NoError(t, err)

	got, err := store.Get("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", got.Address)
	assert.Empty(t, got.ContractAddress)

	// Sessions are overwritten wholesale, never partially mutated.
	got.ContractAddress = "0x3333333333333333333333333333333333333333"
	require.NoError(t, store.Put(got))

	got, err = store.Get("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "0x3333333333333333333333333333333333333333", got.ContractAddress)

	// Clearing removes both cached addresses with the session, so a
	// later lookup sees "logged out", not "registered but address missing".
	require.NoError(t, store.Clear("sid-1"))
	_, err = store.Get("sid-1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get("nope")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	// Clearing an unknown session is a no-op, matching cache semantics.
	assert.NoError(t, store.Clear("nope"))
}
